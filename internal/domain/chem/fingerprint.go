package chem

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"math/bits"
	"sort"
	"strconv"
	"strings"

	"github.com/turtacn/MolDesc-Toolkit/pkg/errors"
	ctypes "github.com/turtacn/MolDesc-Toolkit/pkg/types/chem"
)

// ─────────────────────────────────────────────────────────────────────────────
// Fingerprint structure
// ─────────────────────────────────────────────────────────────────────────────

// Fingerprint is a fixed-width molecular bit vector.  Bits holds the packed
// bit array as bytes, where bit i is stored in byte i/8 at bit position i%8.
type Fingerprint struct {
	// Type identifies which fingerprint scheme was used.
	Type ctypes.FingerprintType

	// Bits is the packed bit-vector representation.
	Bits []byte

	// Length is the total number of bits.
	Length int

	// NumOnBits is the count of set bits (popcount).
	NumOnBits int
}

// NewFingerprint constructs a Fingerprint from raw bit data.
func NewFingerprint(fpType ctypes.FingerprintType, data []byte, length int) *Fingerprint {
	onBits := 0
	for _, b := range data {
		onBits += bits.OnesCount8(b)
	}
	return &Fingerprint{Type: fpType, Bits: data, Length: length, NumOnBits: onBits}
}

// GetBit returns true if the bit at the given index is set.
func (fp *Fingerprint) GetBit(index int) bool {
	if index < 0 || index >= fp.Length {
		return false
	}
	return (fp.Bits[index/8] & (1 << uint(index%8))) != 0
}

// setBit sets the bit at the given index in a packed byte slice.
func setBit(data []byte, index int) {
	data[index/8] |= 1 << uint(index%8)
}

// hashToBit maps an environment descriptor string to a bit index in [0, nBits).
func hashToBit(descriptor string, nBits int) int {
	sum := sha256.Sum256([]byte(descriptor))
	return int(binary.BigEndian.Uint64(sum[:8]) % uint64(nBits))
}

// ─────────────────────────────────────────────────────────────────────────────
// Fingerprint computation
// ─────────────────────────────────────────────────────────────────────────────

// Compute calculates the fingerprint of mol under the given scheme.  radius
// is used by the Morgan scheme only.  Fails for unsupported schemes or a
// non-positive width.
func Compute(mol *Molecule, fpType ctypes.FingerprintType, nBits, radius int) (*Fingerprint, error) {
	contrib, err := BitContributors(mol, fpType, nBits, radius)
	if err != nil {
		return nil, err
	}
	data := make([]byte, (nBits+7)/8)
	for bit := range contrib {
		setBit(data, bit)
	}
	return NewFingerprint(fpType, data, nBits), nil
}

// BitContributors calculates which atoms are responsible for each set bit of
// the fingerprint: the returned map has one entry per set bit, listing the
// contributing atom indices (duplicates preserved when several environments
// of the same atom hash to one bit).  The attribution driver uses this to
// push model weights back onto atoms; Compute derives the plain bit vector
// from the key set.
func BitContributors(mol *Molecule, fpType ctypes.FingerprintType, nBits, radius int) (map[int][]int, error) {
	if nBits <= 0 {
		return nil, errors.Newf(errors.CodeInvalidConfig, "nBits must be positive, got %d", nBits)
	}
	if radius < 0 {
		return nil, errors.Newf(errors.CodeInvalidConfig, "radius must be non-negative, got %d", radius)
	}

	contrib := map[int][]int{}
	add := func(descriptor string, atoms ...int) {
		bit := hashToBit(string(fpType)+"|"+descriptor, nBits)
		contrib[bit] = append(contrib[bit], atoms...)
	}

	switch fpType {
	case ctypes.FPMorgan:
		// Atom-centred circular environments at every radius up to the bound,
		// exactly the CircuS shell signatures.
		for ai := 0; ai < mol.AtomCount(); ai++ {
			for r := 0; r <= radius; r++ {
				frag := AtomFragment(mol, ai, r)
				add(frag.Signature, ai)
			}
		}

	case ctypes.FPAtomPairs:
		// Unordered atom pairs with their topological distance.
		for i := 0; i < mol.AtomCount(); i++ {
			dist := mol.Distances(i)
			for j := i + 1; j < mol.AtomCount(); j++ {
				if dist[j] < 0 {
					continue
				}
				ti, tj := mol.atomToken(i), mol.atomToken(j)
				if tj < ti {
					ti, tj = tj, ti
				}
				add(ti+"|"+strconv.Itoa(dist[j])+"|"+tj, i, j)
			}
		}

	case ctypes.FPTorsion:
		// Linear paths of exactly four atoms.
		forEachPath(mol, 3, 3, func(path []int) {
			add(pathDescriptor(mol, path), path...)
		})

	case ctypes.FPRDKit:
		// Daylight-style: all linear paths of 1..7 bonds.
		forEachPath(mol, 1, 7, func(path []int) {
			add(pathDescriptor(mol, path), path...)
		})

	case ctypes.FPAvalon:
		// Substructure-pattern mix: atom types with degree, bond types, and
		// short paths.
		for ai := 0; ai < mol.AtomCount(); ai++ {
			add("atom:"+mol.atomToken(ai)+"/"+strconv.Itoa(len(mol.IncidentBonds(ai))), ai)
		}
		for bi := range mol.Bonds {
			b := &mol.Bonds[bi]
			ta, tb := mol.atomToken(b.A), mol.atomToken(b.B)
			if tb < ta {
				ta, tb = tb, ta
			}
			add("bond:"+ta+bondToken(b)+tb, b.A, b.B)
		}
		forEachPath(mol, 2, 3, func(path []int) {
			add("path:"+pathDescriptor(mol, path), path...)
		})

	default:
		return nil, errors.Newf(errors.ErrCodeFingerprintTypeUnsupported,
			"unsupported fingerprint type %q", string(fpType))
	}

	// Deterministic contributor order regardless of map iteration.
	for bit := range contrib {
		sort.Ints(contrib[bit])
	}
	return contrib, nil
}

// pathDescriptor builds the orientation-free descriptor of a linear atom
// path: atom tokens joined by bond tokens, read in whichever direction sorts
// lower so both traversal directions agree.
func pathDescriptor(mol *Molecule, path []int) string {
	forward := pathString(mol, path)
	rev := make([]int, len(path))
	for i, a := range path {
		rev[len(path)-1-i] = a
	}
	backward := pathString(mol, rev)
	if backward < forward {
		return backward
	}
	return forward
}

func pathString(mol *Molecule, path []int) string {
	var sb strings.Builder
	for i, a := range path {
		if i > 0 {
			sb.WriteString(bondToken(mol.BondBetween(path[i-1], a)))
		}
		sb.WriteString(mol.atomToken(a))
	}
	return sb.String()
}

// forEachPath enumerates every simple linear path with minBonds..maxBonds
// bonds, visiting each undirected path once (the lower start index wins).
func forEachPath(mol *Molecule, minBonds, maxBonds int, visit func(path []int)) {
	var walk func(path []int, visited map[int]bool)
	walk = func(path []int, visited map[int]bool) {
		last := path[len(path)-1]
		// Emit once per undirected path: the smaller endpoint starts it.
		if len(path)-1 >= minBonds && path[0] < last {
			visit(path)
		}
		if len(path)-1 == maxBonds {
			return
		}
		for _, nb := range mol.Neighbors(last) {
			if visited[nb] {
				continue
			}
			visited[nb] = true
			walk(append(path, nb), visited)
			delete(visited, nb)
		}
	}
	for start := 0; start < mol.AtomCount(); start++ {
		walk([]int{start}, map[int]bool{start: true})
	}
}

// DescriptorString renders the fingerprint metadata, used by verbose CLI
// narration.
func (fp *Fingerprint) DescriptorString() string {
	return fmt.Sprintf("%s/%d bits (%d set)", fp.Type, fp.Length, fp.NumOnBits)
}
