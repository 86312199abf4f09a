package fetch

import (
	// 外部依赖
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// 内部引用
	code "github.com/scienceol/molcache/pkg/common/code"
	coreCompound "github.com/scienceol/molcache/pkg/core/compound"
	impl "github.com/scienceol/molcache/pkg/core/compound/compound"
	"github.com/scienceol/molcache/pkg/middleware/logger"
	molcache "github.com/scienceol/molcache/pkg/molcache"
)

type options struct {
	cid      bool
	smiles   bool
	inchi    bool
	inchikey bool
	refresh  bool
	jsonOut  bool
	workers  int
}

type handler struct {
	opts     options
	cService coreCompound.Service
}

func New() *cobra.Command {
	h := &handler{}
	cmd := &cobra.Command{
		Use:          "fetch IDENTIFIER...",
		Long:         "Fetch compound records from PubChem into the local cache",
		SilenceUsage: true,
		Args:         cobra.MinimumNArgs(1),
		PreRunE:      h.init,
		RunE:         h.run,
		PostRunE:     h.close,
	}

	flags := cmd.Flags()
	flags.BoolVar(&h.opts.cid, "cid", false, "treat identifiers as PubChem CIDs")
	flags.BoolVar(&h.opts.smiles, "smiles", false, "treat identifiers as SMILES strings")
	flags.BoolVar(&h.opts.inchi, "inchi", false, "treat identifiers as InChI strings")
	flags.BoolVar(&h.opts.inchikey, "inchikey", false, "treat identifiers as InChIKeys")
	flags.BoolVar(&h.opts.refresh, "refresh", false, "refetch even when already cached")
	flags.BoolVar(&h.opts.jsonOut, "json", false, "print full records as JSON")
	flags.IntVar(&h.opts.workers, "workers", 0, "concurrent fetches (default 5)")
	cmd.MarkFlagsMutuallyExclusive("cid", "smiles", "inchi", "inchikey")
	return cmd
}

// namespace maps the selector flags onto a key namespace. Bare
// identifiers are compound names.
func (o *options) namespace() string {
	switch {
	case o.cid:
		return string(molcache.NamespaceCID)
	case o.smiles:
		return string(molcache.NamespaceSMILES)
	case o.inchi:
		return string(molcache.NamespaceInChI)
	case o.inchikey:
		return string(molcache.NamespaceInChIKey)
	default:
		return string(molcache.NamespaceName)
	}
}

func (h *handler) init(cmd *cobra.Command, _ []string) error {
	svc, err := impl.New(cmd.Context(), &impl.Options{Workers: h.opts.workers})
	if err != nil {
		return err
	}
	h.cService = svc
	return nil
}

func (h *handler) run(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	ns := h.opts.namespace()

	queries := make([]coreCompound.Query, 0, len(args))
	for _, ident := range args {
		queries = append(queries, coreCompound.Query{Namespace: ns, Identifier: ident})
	}

	resp, err := h.cService.Prefetch(ctx, &coreCompound.PrefetchReq{
		Queries: queries,
		Refresh: h.opts.refresh,
	})
	if err != nil {
		return err
	}

	failed := make(map[string]string, len(resp.Failed))
	for _, f := range resp.Failed {
		failed[f.Identifier] = f.Msg
	}

	failCount := 0
	results := make([]*coreCompound.LookupResp, 0, len(args))
	for _, ident := range args {
		if msg, ok := failed[ident]; ok {
			fmt.Fprintf(os.Stderr, "%s: %s\n", ident, msg)
			failCount++
			continue
		}
		look, lerr := h.cService.Lookup(ctx, &coreCompound.LookupReq{Namespace: ns, Identifier: ident})
		if lerr != nil {
			fmt.Fprintf(os.Stderr, "%s: %s\n", ident, code.Msg(lerr))
			failCount++
			continue
		}
		if h.opts.jsonOut {
			results = append(results, look)
			continue
		}
		fmt.Printf("%s\tcid=%d\t%s\n", look.Key, look.Properties.CID, look.Properties.DisplayName())
	}

	if h.opts.jsonOut && len(results) > 0 {
		out, merr := json.MarshalIndent(results, "", "  ")
		if merr != nil {
			return code.UnDefineErr.WithErr(merr)
		}
		fmt.Println(string(out))
	}

	if failCount > 0 {
		// The post-run save is skipped on error, keep what did succeed.
		if ferr := h.cService.Flush(ctx); ferr != nil {
			logger.Errorf(ctx, "flush cache err: %+v", ferr)
		}
		return code.PrefetchErr.WithMsgf("%d of %d fetches failed", failCount, len(args))
	}
	return nil
}

func (h *handler) close(cmd *cobra.Command, _ []string) error {
	return h.cService.Close(cmd.Context())
}
