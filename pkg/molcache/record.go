package molcache

import "fmt"

// Record holds the properties the remote provider reports for one compound.
// Only CID is always present; every other field is optional because PubChem
// omits properties it cannot compute for a given structure. Fields are
// declared in their serialized order.
//
// Records are value-ish: the cache stores and returns copies, so mutating a
// record obtained from a cache never changes the cached state.
type Record struct {
	AtomStereoCount          *int32   `json:"atom_stereo_count,omitempty"`
	BondStereoCount          *int32   `json:"bond_stereo_count,omitempty"`
	CanonicalSMILES          *string  `json:"canonical_smiles,omitempty"`
	Charge                   *int32   `json:"charge,omitempty"`
	CID                      int64    `json:"cid"`
	Complexity               *int32   `json:"complexity,omitempty"`
	ConformerCount3D         *int32   `json:"conformer_count_3d,omitempty"`
	ConformerModelRMSD3D     *float64 `json:"conformer_model_rmsd_3d,omitempty"`
	CovalentUnitCount        *int32   `json:"covalent_unit_count,omitempty"`
	DefinedAtomStereoCount   *int32   `json:"defined_atom_stereo_count,omitempty"`
	DefinedBondStereoCount   *int32   `json:"defined_bond_stereo_count,omitempty"`
	EffectiveRotorCount3D    *float64 `json:"effective_rotor_count_3d,omitempty"`
	ExactMass                *string  `json:"exact_mass,omitempty"`
	FeatureAcceptorCount3D   *int32   `json:"feature_acceptor_count_3d,omitempty"`
	FeatureAnionCount3D      *int32   `json:"feature_anion_count_3d,omitempty"`
	FeatureCationCount3D     *int32   `json:"feature_cation_count_3d,omitempty"`
	FeatureCount3D           *int32   `json:"feature_count_3d,omitempty"`
	FeatureDonorCount3D      *int32   `json:"feature_donor_count_3d,omitempty"`
	FeatureHydrophobeCount3D *int32   `json:"feature_hydrophobe_count_3d,omitempty"`
	FeatureRingCount3D       *int32   `json:"feature_ring_count_3d,omitempty"`
	Fingerprint2D            *string  `json:"fingerprint_2d,omitempty"`
	HBondAcceptorCount       *int32   `json:"hbond_acceptor_count,omitempty"`
	HBondDonorCount          *int32   `json:"hbond_donor_count,omitempty"`
	HeavyAtomCount           *int32   `json:"heavy_atom_count,omitempty"`
	InChI                    *string  `json:"inchi,omitempty"`
	InChIKey                 *string  `json:"inchi_key,omitempty"`
	IsomericSMILES           *string  `json:"isomeric_smiles,omitempty"`
	IsotopeAtomCount         *int32   `json:"isotope_atom_count,omitempty"`
	IUPACName                *string  `json:"iupac_name,omitempty"`
	MolecularFormula         *string  `json:"molecular_formula,omitempty"`
	MolecularWeight          *string  `json:"molecular_weight,omitempty"`
	MonoisotopicMass         *string  `json:"monoisotopic_mass,omitempty"`
	RotatableBondCount       *int32   `json:"rotatable_bond_count,omitempty"`
	Title                    *string  `json:"title,omitempty"`
	TPSA                     *float64 `json:"tpsa,omitempty"`
	UndefinedAtomStereoCount *int32   `json:"undefined_atom_stereo_count,omitempty"`
	UndefinedBondStereoCount *int32   `json:"undefined_bond_stereo_count,omitempty"`
	Volume3D                 *float64 `json:"volume_3d,omitempty"`
	XStericQuadrupole3D      *float64 `json:"x_steric_quadrupole_3d,omitempty"`
	XLogP                    *float64 `json:"xlogp,omitempty"`
	YStericQuadrupole3D      *float64 `json:"y_steric_quadrupole_3d,omitempty"`
	ZStericQuadrupole3D      *float64 `json:"z_steric_quadrupole_3d,omitempty"`
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// Clone returns a deep copy of the record. Every optional field is
// re-pointed at its own value so neither copy can reach the other.
func (r *Record) Clone() *Record {
	if r == nil {
		return nil
	}
	out := *r
	out.AtomStereoCount = clonePtr(r.AtomStereoCount)
	out.BondStereoCount = clonePtr(r.BondStereoCount)
	out.CanonicalSMILES = clonePtr(r.CanonicalSMILES)
	out.Charge = clonePtr(r.Charge)
	out.Complexity = clonePtr(r.Complexity)
	out.ConformerCount3D = clonePtr(r.ConformerCount3D)
	out.ConformerModelRMSD3D = clonePtr(r.ConformerModelRMSD3D)
	out.CovalentUnitCount = clonePtr(r.CovalentUnitCount)
	out.DefinedAtomStereoCount = clonePtr(r.DefinedAtomStereoCount)
	out.DefinedBondStereoCount = clonePtr(r.DefinedBondStereoCount)
	out.EffectiveRotorCount3D = clonePtr(r.EffectiveRotorCount3D)
	out.ExactMass = clonePtr(r.ExactMass)
	out.FeatureAcceptorCount3D = clonePtr(r.FeatureAcceptorCount3D)
	out.FeatureAnionCount3D = clonePtr(r.FeatureAnionCount3D)
	out.FeatureCationCount3D = clonePtr(r.FeatureCationCount3D)
	out.FeatureCount3D = clonePtr(r.FeatureCount3D)
	out.FeatureDonorCount3D = clonePtr(r.FeatureDonorCount3D)
	out.FeatureHydrophobeCount3D = clonePtr(r.FeatureHydrophobeCount3D)
	out.FeatureRingCount3D = clonePtr(r.FeatureRingCount3D)
	out.Fingerprint2D = clonePtr(r.Fingerprint2D)
	out.HBondAcceptorCount = clonePtr(r.HBondAcceptorCount)
	out.HBondDonorCount = clonePtr(r.HBondDonorCount)
	out.HeavyAtomCount = clonePtr(r.HeavyAtomCount)
	out.InChI = clonePtr(r.InChI)
	out.InChIKey = clonePtr(r.InChIKey)
	out.IsomericSMILES = clonePtr(r.IsomericSMILES)
	out.IsotopeAtomCount = clonePtr(r.IsotopeAtomCount)
	out.IUPACName = clonePtr(r.IUPACName)
	out.MolecularFormula = clonePtr(r.MolecularFormula)
	out.MolecularWeight = clonePtr(r.MolecularWeight)
	out.MonoisotopicMass = clonePtr(r.MonoisotopicMass)
	out.RotatableBondCount = clonePtr(r.RotatableBondCount)
	out.Title = clonePtr(r.Title)
	out.TPSA = clonePtr(r.TPSA)
	out.UndefinedAtomStereoCount = clonePtr(r.UndefinedAtomStereoCount)
	out.UndefinedBondStereoCount = clonePtr(r.UndefinedBondStereoCount)
	out.Volume3D = clonePtr(r.Volume3D)
	out.XStericQuadrupole3D = clonePtr(r.XStericQuadrupole3D)
	out.XLogP = clonePtr(r.XLogP)
	out.YStericQuadrupole3D = clonePtr(r.YStericQuadrupole3D)
	out.ZStericQuadrupole3D = clonePtr(r.ZStericQuadrupole3D)
	return &out
}

// DisplayName returns the best human label available: Title, then IUPAC
// name, then the CID rendered as text.
func (r *Record) DisplayName() string {
	if r.Title != nil && *r.Title != "" {
		return *r.Title
	}
	if r.IUPACName != nil && *r.IUPACName != "" {
		return *r.IUPACName
	}
	return fmt.Sprintf("CID %d", r.CID)
}
