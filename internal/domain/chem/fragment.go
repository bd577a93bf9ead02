package chem

import (
	"sort"
	"strings"
)

// ─────────────────────────────────────────────────────────────────────────────
// Circular substructure fragments
// ─────────────────────────────────────────────────────────────────────────────

// Fragment is one circular substructure: a canonical signature naming the
// fragment plus the indices of the atoms it covers.  Equal signatures denote
// the same fragment regardless of which molecule or centre produced them.
type Fragment struct {
	// Signature is the canonical textual form of the fragment.  It doubles as
	// the feature-column name in CircuS feature tables.
	Signature string

	// Atoms lists the covered atom indices in ascending order.  Used by the
	// attribution driver to map feature weights back onto atoms.
	Atoms []int
}

// shellSignature builds the canonical shell expansion around a set of seed
// atoms: for each distance d in 1..radius, the sorted tokens of the atoms at
// that distance, each prefixed with the smallest bond token connecting it to
// the previous shell.  The representation is orientation-free, so two centres
// with the same environment yield the same string.
func shellSignature(m *Molecule, dist []int, radius int) (string, []int) {
	covered := []int{}
	for i, d := range dist {
		if d >= 0 && d <= radius {
			covered = append(covered, i)
		}
	}
	sort.Ints(covered)

	var sb strings.Builder
	for d := 1; d <= radius; d++ {
		var tokens []string
		for _, i := range covered {
			if dist[i] != d {
				continue
			}
			// Smallest bond token into the previous shell keeps the signature
			// deterministic when an atom has several inward bonds.
			best := ""
			first := true
			for _, nb := range m.Neighbors(i) {
				if dist[nb] != d-1 {
					continue
				}
				bt := bondToken(m.BondBetween(i, nb))
				if first || bt < best {
					best = bt
					first = false
				}
			}
			tokens = append(tokens, best+m.atomToken(i))
		}
		if len(tokens) == 0 {
			break
		}
		sort.Strings(tokens)
		sb.WriteString("(")
		sb.WriteString(strings.Join(tokens, "."))
		sb.WriteString(")")
	}
	return sb.String(), covered
}

// AtomFragment computes the atom-centred circular fragment of the given
// radius around atom center.
func AtomFragment(m *Molecule, center, radius int) Fragment {
	dist := m.Distances(center)
	shells, covered := shellSignature(m, dist, radius)
	return Fragment{
		Signature: m.atomToken(center) + shells,
		Atoms:     covered,
	}
}

// BondFragment computes the bond-centred circular fragment of the given
// radius around bond bondIdx.  The distance of an atom is the smaller of its
// distances to the two bond endpoints.
func BondFragment(m *Molecule, bondIdx, radius int) Fragment {
	b := &m.Bonds[bondIdx]
	da := m.Distances(b.A)
	db := m.Distances(b.B)

	dist := make([]int, m.AtomCount())
	for i := range dist {
		switch {
		case da[i] < 0:
			dist[i] = db[i]
		case db[i] < 0:
			dist[i] = da[i]
		case da[i] < db[i]:
			dist[i] = da[i]
		default:
			dist[i] = db[i]
		}
	}
	// The endpoints themselves form shell 0.
	shells, covered := shellSignature(m, dist, radius)

	// Orientation-free centre token: smaller endpoint token first.
	ta, tb := m.atomToken(b.A), m.atomToken(b.B)
	if tb < ta {
		ta, tb = tb, ta
	}
	return Fragment{
		Signature: ta + bondToken(b) + tb + shells,
		Atoms:     covered,
	}
}

// EnumerateFragments lists every circular fragment of m with radius in
// lower..upper, atom-centred by default or bond-centred when onBond is set.
// The order is deterministic for a given molecule: centres in SMILES order,
// radii ascending.
func EnumerateFragments(m *Molecule, lower, upper int, onBond bool) []Fragment {
	var out []Fragment
	if onBond {
		for bi := range m.Bonds {
			for r := lower; r <= upper; r++ {
				out = append(out, BondFragment(m, bi, r))
			}
		}
		return out
	}
	for ai := 0; ai < m.AtomCount(); ai++ {
		for r := lower; r <= upper; r++ {
			out = append(out, AtomFragment(m, ai, r))
		}
	}
	return out
}
