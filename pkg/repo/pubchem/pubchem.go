package pubchem

import (
	// 外部依赖
	"context"
	"net/http"
	"time"

	resty "github.com/go-resty/resty/v2"

	// 内部引用
	config "github.com/scienceol/molcache/internal/config"
	code "github.com/scienceol/molcache/pkg/common/code"
	logger "github.com/scienceol/molcache/pkg/middleware/logger"
	molcache "github.com/scienceol/molcache/pkg/molcache"
	repo "github.com/scienceol/molcache/pkg/repo"
	utils "github.com/scienceol/molcache/pkg/utils"
)

// allProperties is the full property list requested for every compound,
// rendered into the PUG REST path.
const allProperties = "MolecularFormula,MolecularWeight,CanonicalSMILES,IsomericSMILES," +
	"InChI,InChIKey,IUPACName,Title,XLogP,ExactMass,MonoisotopicMass,TPSA,Complexity," +
	"Charge,HBondDonorCount,HBondAcceptorCount,RotatableBondCount,HeavyAtomCount," +
	"IsotopeAtomCount,AtomStereoCount,DefinedAtomStereoCount,UndefinedAtomStereoCount," +
	"BondStereoCount,DefinedBondStereoCount,UndefinedBondStereoCount,CovalentUnitCount," +
	"Volume3D,XStericQuadrupole3D,YStericQuadrupole3D,ZStericQuadrupole3D,FeatureCount3D," +
	"FeatureAcceptorCount3D,FeatureDonorCount3D,FeatureAnionCount3D,FeatureCationCount3D," +
	"FeatureRingCount3D,FeatureHydrophobeCount3D,ConformerModelRMSD3D,EffectiveRotorCount3D," +
	"ConformerCount3D,Fingerprint2D"

// property mirrors one element of the PUG REST PropertyTable. String-typed
// mass fields are PubChem's own convention, not ours.
type property struct {
	CID                      int64    `json:"CID"`
	MolecularFormula         string   `json:"MolecularFormula"`
	MolecularWeight          string   `json:"MolecularWeight"`
	CanonicalSMILES          string   `json:"CanonicalSMILES"`
	IsomericSMILES           string   `json:"IsomericSMILES"`
	SMILES                   string   `json:"SMILES"`
	InChI                    string   `json:"InChI"`
	InChIKey                 string   `json:"InChIKey"`
	IUPACName                string   `json:"IUPACName"`
	Title                    string   `json:"Title"`
	XLogP                    *float64 `json:"XLogP"`
	ExactMass                string   `json:"ExactMass"`
	MonoisotopicMass         string   `json:"MonoisotopicMass"`
	TPSA                     *float64 `json:"TPSA"`
	Complexity               *float64 `json:"Complexity"`
	Charge                   *int32   `json:"Charge"`
	HBondDonorCount          *int32   `json:"HBondDonorCount"`
	HBondAcceptorCount       *int32   `json:"HBondAcceptorCount"`
	RotatableBondCount       *int32   `json:"RotatableBondCount"`
	HeavyAtomCount           *int32   `json:"HeavyAtomCount"`
	IsotopeAtomCount         *int32   `json:"IsotopeAtomCount"`
	AtomStereoCount          *int32   `json:"AtomStereoCount"`
	DefinedAtomStereoCount   *int32   `json:"DefinedAtomStereoCount"`
	UndefinedAtomStereoCount *int32   `json:"UndefinedAtomStereoCount"`
	BondStereoCount          *int32   `json:"BondStereoCount"`
	DefinedBondStereoCount   *int32   `json:"DefinedBondStereoCount"`
	UndefinedBondStereoCount *int32   `json:"UndefinedBondStereoCount"`
	CovalentUnitCount        *int32   `json:"CovalentUnitCount"`
	Volume3D                 *float64 `json:"Volume3D"`
	XStericQuadrupole3D      *float64 `json:"XStericQuadrupole3D"`
	YStericQuadrupole3D      *float64 `json:"YStericQuadrupole3D"`
	ZStericQuadrupole3D      *float64 `json:"ZStericQuadrupole3D"`
	FeatureCount3D           *int32   `json:"FeatureCount3D"`
	FeatureAcceptorCount3D   *int32   `json:"FeatureAcceptorCount3D"`
	FeatureDonorCount3D      *int32   `json:"FeatureDonorCount3D"`
	FeatureAnionCount3D      *int32   `json:"FeatureAnionCount3D"`
	FeatureCationCount3D     *int32   `json:"FeatureCationCount3D"`
	FeatureRingCount3D       *int32   `json:"FeatureRingCount3D"`
	FeatureHydrophobeCount3D *int32   `json:"FeatureHydrophobeCount3D"`
	ConformerModelRMSD3D     *float64 `json:"ConformerModelRMSD3D"`
	EffectiveRotorCount3D    *float64 `json:"EffectiveRotorCount3D"`
	ConformerCount3D         *int32   `json:"ConformerCount3D"`
	Fingerprint2D            string   `json:"Fingerprint2D"`
}

type PropertyResponse struct {
	PropertyTable struct {
		Properties []property `json:"Properties"`
	} `json:"PropertyTable"`
}

type pubchemImpl struct {
	client *resty.Client
}

func NewPubChemRepo() repo.PubChemRepo {
	conf := config.Global().RPC.PubChem

	return &pubchemImpl{
		client: resty.New().
			SetTimeout(time.Duration(conf.TimeoutSec) * time.Second).
			EnableTrace().
			SetBaseURL(conf.Addr).
			SetHeader("Accept", "application/json"),
	}
}

func (p *pubchemImpl) GetCompound(ctx context.Context, key molcache.Key) (*molcache.Record, error) {
	propResp := &PropertyResponse{}
	var (
		res *resty.Response
		err error
	)

	switch key.Namespace {
	case molcache.NamespaceCID, molcache.NamespaceName, molcache.NamespaceSMILES, molcache.NamespaceInChIKey:
		res, err = p.client.R().
			SetContext(ctx).
			SetPathParams(map[string]string{
				"namespace":  string(key.Namespace),
				"identifier": key.Identifier,
				"props":      allProperties,
			}).
			SetResult(propResp).
			Get("/rest/pug/compound/{namespace}/{identifier}/property/{props}/JSON")
	case molcache.NamespaceInChI:
		// InChI strings carry characters PUG REST rejects in a path
		// segment, so this namespace goes through the form body.
		res, err = p.client.R().
			SetContext(ctx).
			SetPathParam("props", allProperties).
			SetFormData(map[string]string{"inchi": key.Identifier}).
			SetResult(propResp).
			Post("/rest/pug/compound/inchi/property/{props}/JSON")
	default:
		return nil, code.NamespaceErr.WithMsgf("namespace: %s", key.Namespace)
	}

	if err != nil {
		logger.Errorf(ctx, "GetCompound request fail key: %s, err: %v", key, err)
		return nil, code.RPCHttpErr.WithErr(err)
	}
	if res.StatusCode() == http.StatusNotFound {
		return nil, code.CompoundNotFound.WithMsgf("no compound for %s", key)
	}
	if res.StatusCode() != http.StatusOK {
		return nil, code.RPCHttpCodeErr.WithMsgf("GetCompound %s status: %d", key, res.StatusCode())
	}
	if len(propResp.PropertyTable.Properties) == 0 {
		return nil, code.RPCHttpCodeRespErr.WithMsgf("GetCompound %s: empty property table", key)
	}

	return toRecord(&propResp.PropertyTable.Properties[0]), nil
}

// toRecord maps a PUG REST property row onto a cacheable record. PubChem
// omits properties it cannot compute, so empty strings mean absent.
func toRecord(prop *property) *molcache.Record {
	rec := &molcache.Record{
		CID:                      prop.CID,
		MolecularFormula:         optStr(prop.MolecularFormula),
		MolecularWeight:          optStr(prop.MolecularWeight),
		CanonicalSMILES:          optStr(utils.Or(prop.CanonicalSMILES, prop.SMILES)),
		IsomericSMILES:           optStr(utils.Or(prop.IsomericSMILES, prop.CanonicalSMILES, prop.SMILES)),
		InChI:                    optStr(prop.InChI),
		InChIKey:                 optStr(prop.InChIKey),
		IUPACName:                optStr(prop.IUPACName),
		Title:                    optStr(utils.Or(prop.Title, prop.IUPACName)),
		XLogP:                    prop.XLogP,
		ExactMass:                optStr(prop.ExactMass),
		MonoisotopicMass:         optStr(prop.MonoisotopicMass),
		TPSA:                     prop.TPSA,
		Charge:                   prop.Charge,
		HBondDonorCount:          prop.HBondDonorCount,
		HBondAcceptorCount:       prop.HBondAcceptorCount,
		RotatableBondCount:       prop.RotatableBondCount,
		HeavyAtomCount:           prop.HeavyAtomCount,
		IsotopeAtomCount:         prop.IsotopeAtomCount,
		AtomStereoCount:          prop.AtomStereoCount,
		DefinedAtomStereoCount:   prop.DefinedAtomStereoCount,
		UndefinedAtomStereoCount: prop.UndefinedAtomStereoCount,
		BondStereoCount:          prop.BondStereoCount,
		DefinedBondStereoCount:   prop.DefinedBondStereoCount,
		UndefinedBondStereoCount: prop.UndefinedBondStereoCount,
		CovalentUnitCount:        prop.CovalentUnitCount,
		Volume3D:                 prop.Volume3D,
		XStericQuadrupole3D:      prop.XStericQuadrupole3D,
		YStericQuadrupole3D:      prop.YStericQuadrupole3D,
		ZStericQuadrupole3D:      prop.ZStericQuadrupole3D,
		FeatureCount3D:           prop.FeatureCount3D,
		FeatureAcceptorCount3D:   prop.FeatureAcceptorCount3D,
		FeatureDonorCount3D:      prop.FeatureDonorCount3D,
		FeatureAnionCount3D:      prop.FeatureAnionCount3D,
		FeatureCationCount3D:     prop.FeatureCationCount3D,
		FeatureRingCount3D:       prop.FeatureRingCount3D,
		FeatureHydrophobeCount3D: prop.FeatureHydrophobeCount3D,
		ConformerModelRMSD3D:     prop.ConformerModelRMSD3D,
		EffectiveRotorCount3D:    prop.EffectiveRotorCount3D,
		ConformerCount3D:         prop.ConformerCount3D,
		Fingerprint2D:            optStr(prop.Fingerprint2D),
	}
	// PUG REST reports complexity as a float, the record keeps the
	// integral value.
	if prop.Complexity != nil {
		v := int32(*prop.Complexity)
		rec.Complexity = &v
	}
	return rec
}

func optStr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
