package chem

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAtomFragment_RadiusZero(t *testing.T) {
	mol, err := ParseSMILES("CCO")
	require.NoError(t, err)

	frag := AtomFragment(mol, 0, 0)
	assert.Equal(t, "C", frag.Signature)
	assert.Equal(t, []int{0}, frag.Atoms)

	frag = AtomFragment(mol, 2, 0)
	assert.Equal(t, "O", frag.Signature)
}

func TestAtomFragment_ShellOrderIsCanonical(t *testing.T) {
	// The middle atom of CCO and the middle atom of OCC see the same
	// environment; the signature must not depend on SMILES orientation.
	a, err := ParseSMILES("CCO")
	require.NoError(t, err)
	b, err := ParseSMILES("OCC")
	require.NoError(t, err)

	fa := AtomFragment(a, 1, 1)
	fb := AtomFragment(b, 1, 1)
	assert.Equal(t, fa.Signature, fb.Signature)
	assert.Equal(t, "C(C.O)", fa.Signature)
}

func TestAtomFragment_CoversShellAtoms(t *testing.T) {
	mol, err := ParseSMILES("CCCC")
	require.NoError(t, err)

	frag := AtomFragment(mol, 0, 2)
	assert.Equal(t, []int{0, 1, 2}, frag.Atoms)
}

func TestSharedEnvironmentsAcrossMolecules(t *testing.T) {
	// A terminal carbon bonded to one carbon looks the same in ethanol and
	// propane, so their radius-1 signatures must collide.
	ethanol, err := ParseSMILES("CCO")
	require.NoError(t, err)
	propane, err := ParseSMILES("CCC")
	require.NoError(t, err)

	fe := AtomFragment(ethanol, 0, 1)
	fp := AtomFragment(propane, 0, 1)
	assert.Equal(t, fe.Signature, fp.Signature)
	assert.Equal(t, "C(C)", fe.Signature)
}

func TestBondFragment_OrientationFree(t *testing.T) {
	mol, err := ParseSMILES("CO")
	require.NoError(t, err)
	rev, err := ParseSMILES("OC")
	require.NoError(t, err)

	assert.Equal(t,
		BondFragment(mol, 0, 0).Signature,
		BondFragment(rev, 0, 0).Signature)
	assert.Equal(t, "CO", BondFragment(mol, 0, 0).Signature)
}

func TestBondFragment_BondOrderInSignature(t *testing.T) {
	single, err := ParseSMILES("CO")
	require.NoError(t, err)
	double, err := ParseSMILES("C=O")
	require.NoError(t, err)

	assert.NotEqual(t,
		BondFragment(single, 0, 0).Signature,
		BondFragment(double, 0, 0).Signature)
	assert.Equal(t, "C=O", BondFragment(double, 0, 0).Signature)
}

func TestEnumerateFragments_AtomCentred(t *testing.T) {
	mol, err := ParseSMILES("CCO")
	require.NoError(t, err)

	frags := EnumerateFragments(mol, 0, 1, false)
	// 3 atoms x 2 radii.
	require.Len(t, frags, 6)

	sigs := make([]string, len(frags))
	for i, f := range frags {
		sigs[i] = f.Signature
	}
	assert.Equal(t, []string{"C", "C(C)", "C", "C(C.O)", "O", "O(C)"}, sigs)
}

func TestEnumerateFragments_BondCentred(t *testing.T) {
	mol, err := ParseSMILES("CCO")
	require.NoError(t, err)

	frags := EnumerateFragments(mol, 0, 0, true)
	require.Len(t, frags, 2)
	assert.Equal(t, "CC", frags[0].Signature)
	assert.Equal(t, "CO", frags[1].Signature)
}

func TestEnumerateFragments_Deterministic(t *testing.T) {
	mol, err := ParseSMILES("c1ccccc1CC(=O)O")
	require.NoError(t, err)

	first := EnumerateFragments(mol, 0, 3, false)
	second := EnumerateFragments(mol, 0, 3, false)
	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].Signature, second[i].Signature)
		assert.Equal(t, first[i].Atoms, second[i].Atoms)
	}
}
