// Package chem implements the structure-parsing and fragment-enumeration
// collaborators of the MolDesc-Toolkit: a SMILES parser producing a bonded
// molecular graph, circular-substructure enumeration for CircuS descriptors,
// and hashed fixed-width fingerprints.
//
// The parser covers the organic subset, bracket atoms, branches, ring-closure
// digits, explicit bond symbols, and aromatic lowercase notation.  Stereo
// markers are accepted and ignored.  A full-featured SMILES implementation is
// out of scope; what is here is deterministic, which is the property the
// descriptor layer depends on.
package chem

import (
	"strings"

	"github.com/turtacn/MolDesc-Toolkit/pkg/errors"
)

// ─────────────────────────────────────────────────────────────────────────────
// Molecular graph
// ─────────────────────────────────────────────────────────────────────────────

// Atom is one node of the molecular graph.
type Atom struct {
	// Symbol is the element symbol with canonical capitalisation ("C", "Cl").
	Symbol string

	// Aromatic is true for atoms written in aromatic lowercase notation.
	Aromatic bool

	// Charge is the formal charge parsed from a bracket atom, zero otherwise.
	Charge int
}

// Bond is one edge of the molecular graph.  A and B are atom indices, A < B
// is not guaranteed; order follows the SMILES string.
type Bond struct {
	A, B     int
	Order    int // 1, 2, or 3
	Aromatic bool
}

// Molecule is a parsed structure: atoms in SMILES order plus bonds and an
// adjacency index.  Molecules are immutable after parsing.
type Molecule struct {
	Atoms []Atom
	Bonds []Bond

	// adj maps an atom index to the indices of its incident bonds, in bond
	// insertion order (deterministic for a given SMILES string).
	adj [][]int
}

// AtomCount returns the number of atoms.
func (m *Molecule) AtomCount() int { return len(m.Atoms) }

// BondCount returns the number of bonds.
func (m *Molecule) BondCount() int { return len(m.Bonds) }

// IncidentBonds returns the indices of bonds incident to atom i.
func (m *Molecule) IncidentBonds(i int) []int { return m.adj[i] }

// Neighbors returns the atom indices adjacent to atom i, in bond insertion
// order.
func (m *Molecule) Neighbors(i int) []int {
	out := make([]int, 0, len(m.adj[i]))
	for _, bi := range m.adj[i] {
		b := m.Bonds[bi]
		if b.A == i {
			out = append(out, b.B)
		} else {
			out = append(out, b.A)
		}
	}
	return out
}

// BondBetween returns the bond connecting atoms i and j, or nil.
func (m *Molecule) BondBetween(i, j int) *Bond {
	for _, bi := range m.adj[i] {
		b := &m.Bonds[bi]
		if (b.A == i && b.B == j) || (b.A == j && b.B == i) {
			return b
		}
	}
	return nil
}

// Distances returns the graph distance (bond count) from atom `from` to every
// atom, or -1 for atoms in a disconnected component.
func (m *Molecule) Distances(from int) []int {
	dist := make([]int, len(m.Atoms))
	for i := range dist {
		dist[i] = -1
	}
	dist[from] = 0
	queue := []int{from}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, nb := range m.Neighbors(cur) {
			if dist[nb] == -1 {
				dist[nb] = dist[cur] + 1
				queue = append(queue, nb)
			}
		}
	}
	return dist
}

// atomToken is the canonical token of an atom used in fragment signatures:
// lowercase for aromatic atoms, with an explicit charge suffix when charged.
func (m *Molecule) atomToken(i int) string {
	a := m.Atoms[i]
	tok := a.Symbol
	if a.Aromatic {
		tok = strings.ToLower(tok)
	}
	switch {
	case a.Charge > 0:
		tok += strings.Repeat("+", a.Charge)
	case a.Charge < 0:
		tok += strings.Repeat("-", -a.Charge)
	}
	return tok
}

// bondToken is the canonical token of a bond in fragment signatures:
// "" single, "=" double, "#" triple, ":" aromatic.
func bondToken(b *Bond) string {
	if b.Aromatic {
		return ":"
	}
	switch b.Order {
	case 2:
		return "="
	case 3:
		return "#"
	default:
		return ""
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// SMILES parser
// ─────────────────────────────────────────────────────────────────────────────

// twoLetterOrganic lists the two-character organic-subset symbols that must
// be matched before their one-character prefixes.
var twoLetterOrganic = []string{"Cl", "Br"}

// organicSubset is the set of one-character organic-subset symbols.
const organicSubset = "BCNOPSFI"

// aromaticSubset is the set of aromatic lowercase symbols.
const aromaticSubset = "bcnops"

type ringRef struct {
	atom int
	bond byte // pending bond symbol at the opening position, 0 if none
}

// ParseSMILES parses a SMILES string into a Molecule.  Fails with an
// InvalidSMILES-coded error for empty input, unbalanced branches, unclosed
// ring bonds, or characters outside the supported grammar.
func ParseSMILES(s string) (*Molecule, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, errors.New(errors.CodeInvalidSMILES, "empty SMILES string")
	}

	mol := &Molecule{}
	prev := -1
	var pendingBond byte
	var stack []int
	open := map[int]ringRef{}

	addAtom := func(symbol string, aromatic bool, charge int) {
		idx := len(mol.Atoms)
		mol.Atoms = append(mol.Atoms, Atom{Symbol: symbol, Aromatic: aromatic, Charge: charge})
		mol.adj = append(mol.adj, nil)
		if prev >= 0 {
			addBond(mol, prev, idx, pendingBond)
		}
		pendingBond = 0
		prev = idx
	}

	closeRing := func(num int) error {
		ref, ok := open[num]
		if !ok {
			if prev < 0 {
				return errors.Newf(errors.CodeInvalidSMILES, "ring bond %d before any atom", num)
			}
			open[num] = ringRef{atom: prev, bond: pendingBond}
			pendingBond = 0
			return nil
		}
		delete(open, num)
		sym := pendingBond
		if sym == 0 {
			sym = ref.bond
		}
		addBond(mol, ref.atom, prev, sym)
		pendingBond = 0
		return nil
	}

	i := 0
	for i < len(s) {
		c := s[i]
		switch {
		case c == '(':
			if prev < 0 {
				return nil, errors.New(errors.CodeInvalidSMILES, "branch opened before any atom")
			}
			stack = append(stack, prev)
			i++

		case c == ')':
			if len(stack) == 0 {
				return nil, errors.New(errors.CodeInvalidSMILES, "unbalanced branch closure")
			}
			prev = stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			i++

		case c == '-' || c == '=' || c == '#' || c == ':' || c == '/' || c == '\\':
			pendingBond = c
			i++

		case c == '.':
			prev = -1
			pendingBond = 0
			i++

		case c >= '0' && c <= '9':
			if err := closeRing(int(c - '0')); err != nil {
				return nil, err
			}
			i++

		case c == '%':
			if i+2 >= len(s) || !isDigit(s[i+1]) || !isDigit(s[i+2]) {
				return nil, errors.New(errors.CodeInvalidSMILES, "malformed %nn ring bond")
			}
			num := int(s[i+1]-'0')*10 + int(s[i+2]-'0')
			if err := closeRing(num); err != nil {
				return nil, err
			}
			i += 3

		case c == '[':
			end := strings.IndexByte(s[i:], ']')
			if end < 0 {
				return nil, errors.New(errors.CodeInvalidSMILES, "unterminated bracket atom")
			}
			symbol, aromatic, charge, err := parseBracketAtom(s[i+1 : i+end])
			if err != nil {
				return nil, err
			}
			addAtom(symbol, aromatic, charge)
			i += end + 1

		default:
			matched := false
			for _, two := range twoLetterOrganic {
				if strings.HasPrefix(s[i:], two) {
					addAtom(two, false, 0)
					i += 2
					matched = true
					break
				}
			}
			if matched {
				break
			}
			if strings.IndexByte(organicSubset, c) >= 0 {
				addAtom(string(c), false, 0)
				i++
				break
			}
			if strings.IndexByte(aromaticSubset, c) >= 0 {
				addAtom(strings.ToUpper(string(c)), true, 0)
				i++
				break
			}
			return nil, errors.Newf(errors.CodeInvalidSMILES,
				"unexpected character %q at position %d", string(c), i)
		}
	}

	if len(stack) != 0 {
		return nil, errors.New(errors.CodeInvalidSMILES, "unclosed branch")
	}
	if len(open) != 0 {
		return nil, errors.New(errors.CodeInvalidSMILES, "unclosed ring bond")
	}
	if len(mol.Atoms) == 0 {
		return nil, errors.New(errors.CodeInvalidSMILES, "no atoms found in SMILES")
	}
	return mol, nil
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

// addBond records a bond between atoms a and b using the explicit bond symbol
// sym (0 when none was written).  An unwritten bond between two aromatic
// atoms is aromatic; otherwise it is single.
func addBond(mol *Molecule, a, b int, sym byte) {
	bond := Bond{A: a, B: b, Order: 1}
	switch sym {
	case '=':
		bond.Order = 2
	case '#':
		bond.Order = 3
	case ':':
		bond.Aromatic = true
	case 0:
		if mol.Atoms[a].Aromatic && mol.Atoms[b].Aromatic {
			bond.Aromatic = true
		}
	}
	idx := len(mol.Bonds)
	mol.Bonds = append(mol.Bonds, bond)
	mol.adj[a] = append(mol.adj[a], idx)
	mol.adj[b] = append(mol.adj[b], idx)
}

// parseBracketAtom extracts symbol, aromaticity, and formal charge from the
// interior of a bracket atom expression such as "13CH3+", "NH4+], "O-",
// "nH".  Isotope digits, chirality markers, and hydrogen counts are parsed
// and discarded.
func parseBracketAtom(body string) (symbol string, aromatic bool, charge int, err error) {
	i := 0
	for i < len(body) && isDigit(body[i]) { // isotope
		i++
	}
	if i >= len(body) {
		return "", false, 0, errors.New(errors.CodeInvalidSMILES, "bracket atom without element symbol")
	}

	c := body[i]
	switch {
	case c >= 'A' && c <= 'Z':
		symbol = string(c)
		i++
		if i < len(body) && body[i] >= 'a' && body[i] <= 'z' {
			symbol += string(body[i])
			i++
		}
	case c >= 'a' && c <= 'z':
		symbol = strings.ToUpper(string(c))
		aromatic = true
		i++
	default:
		return "", false, 0, errors.Newf(errors.CodeInvalidSMILES,
			"invalid bracket atom %q", body)
	}

	for i < len(body) {
		switch body[i] {
		case '@': // chirality, ignored
			i++
		case 'H': // hydrogen count, ignored
			i++
			for i < len(body) && isDigit(body[i]) {
				i++
			}
		case '+', '-':
			sign := 1
			if body[i] == '-' {
				sign = -1
			}
			i++
			if i < len(body) && isDigit(body[i]) {
				n := 0
				for i < len(body) && isDigit(body[i]) {
					n = n*10 + int(body[i]-'0')
					i++
				}
				charge += sign * n
			} else {
				charge += sign
				// Repeated signs ("++") accumulate through the loop.
			}
		default:
			return "", false, 0, errors.Newf(errors.CodeInvalidSMILES,
				"unsupported bracket atom token %q in %q", string(body[i]), body)
		}
	}
	return symbol, aromatic, charge, nil
}
