package cache

import (
	// 外部依赖
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	// 内部引用
	code "github.com/scienceol/molcache/pkg/common/code"
	coreCompound "github.com/scienceol/molcache/pkg/core/compound"
	impl "github.com/scienceol/molcache/pkg/core/compound/compound"
	molcache "github.com/scienceol/molcache/pkg/molcache"
)

// lsPageSize bounds one Entries call while walking the whole cache.
const lsPageSize = 200

type handler struct {
	namespace string
	cid       bool
	smiles    bool
	inchi     bool
	inchikey  bool
	cService  coreCompound.Service
}

func New() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "cache",
		Long:         "Offline maintenance of the local compound cache",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
	cmd.AddCommand(newLs())
	cmd.AddCommand(newRm())
	cmd.AddCommand(newStats())
	return cmd
}

func newLs() *cobra.Command {
	h := &handler{}
	cmd := &cobra.Command{
		Use:          "ls",
		Long:         "List cached compound entries",
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		PreRunE:      h.init,
		RunE:         h.runLs,
		PostRunE:     h.close,
	}
	cmd.Flags().StringVar(&h.namespace, "namespace", "", "only list keys in this namespace")
	return cmd
}

func newRm() *cobra.Command {
	h := &handler{}
	cmd := &cobra.Command{
		Use:          "rm IDENTIFIER...",
		Long:         "Remove entries from the local compound cache",
		SilenceUsage: true,
		Args:         cobra.MinimumNArgs(1),
		PreRunE:      h.init,
		RunE:         h.runRm,
		PostRunE:     h.close,
	}

	flags := cmd.Flags()
	flags.BoolVar(&h.cid, "cid", false, "treat identifiers as PubChem CIDs")
	flags.BoolVar(&h.smiles, "smiles", false, "treat identifiers as SMILES strings")
	flags.BoolVar(&h.inchi, "inchi", false, "treat identifiers as InChI strings")
	flags.BoolVar(&h.inchikey, "inchikey", false, "treat identifiers as InChIKeys")
	cmd.MarkFlagsMutuallyExclusive("cid", "smiles", "inchi", "inchikey")
	return cmd
}

func newStats() *cobra.Command {
	h := &handler{}
	return &cobra.Command{
		Use:          "stats",
		Long:         "Show counts for the local compound cache",
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		PreRunE:      h.init,
		RunE:         h.runStats,
		PostRunE:     h.close,
	}
}

func (h *handler) keyNamespace() string {
	switch {
	case h.cid:
		return string(molcache.NamespaceCID)
	case h.smiles:
		return string(molcache.NamespaceSMILES)
	case h.inchi:
		return string(molcache.NamespaceInChI)
	case h.inchikey:
		return string(molcache.NamespaceInChIKey)
	default:
		return string(molcache.NamespaceName)
	}
}

func (h *handler) init(cmd *cobra.Command, _ []string) error {
	svc, err := impl.New(cmd.Context(), nil)
	if err != nil {
		return err
	}
	h.cService = svc
	return nil
}

func (h *handler) runLs(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	req := &coreCompound.EntriesReq{Namespace: h.namespace}
	req.Page = 1
	req.PageSize = lsPageSize

	var total, listed int64
	for {
		page, err := h.cService.Entries(ctx, req)
		if err != nil {
			return err
		}
		total = page.Total
		for _, item := range page.Data {
			fmt.Printf("%s\tcid=%d\t%s\n", item.Key, item.Properties.CID, item.Properties.DisplayName())
		}
		listed += int64(len(page.Data))
		if listed >= total || len(page.Data) == 0 {
			break
		}
		req.Page++
	}
	fmt.Printf("%d entries\n", total)
	return nil
}

func (h *handler) runRm(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	ns := h.keyNamespace()

	for _, ident := range args {
		resp, err := h.cService.Evict(ctx, &coreCompound.EvictReq{Namespace: ns, Identifier: ident})
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %s\n", ident, code.Msg(err))
			continue
		}
		if resp.Removed {
			fmt.Printf("removed %s\n", resp.Key)
		} else {
			fmt.Printf("absent %s\n", resp.Key)
		}
	}
	return nil
}

func (h *handler) runStats(cmd *cobra.Command, _ []string) error {
	stats, err := h.cService.Stats(cmd.Context())
	if err != nil {
		return err
	}

	fmt.Printf("path:    %s\n", stats.Path)
	fmt.Printf("entries: %d\n", stats.Entries)
	names := make([]string, 0, len(stats.Namespaces))
	for ns := range stats.Namespaces {
		names = append(names, ns)
	}
	sort.Strings(names)
	for _, ns := range names {
		fmt.Printf("  %s: %d\n", ns, stats.Namespaces[ns])
	}
	return nil
}

func (h *handler) close(cmd *cobra.Command, _ []string) error {
	return h.cService.Close(cmd.Context())
}
