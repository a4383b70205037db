package cli

import (
	"context"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/horizon/internal/core/domain"
)

// filterFlags are shared by every command that runs a library query.
type filterFlags struct {
	scope      string
	combinator string
	facets     []string
}

func (f *filterFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.scope, "scope", "", "all, mine or shared_with_me (default from settings)")
	cmd.Flags().StringVar(&f.combinator, "combinator", "", "any or all within each facet (default from settings)")
	cmd.Flags().StringArrayVarP(&f.facets, "facet", "f", nil,
		"facet selection as name=term[,term]; repeatable (e.g. -f topics=ai -f steep=social)")
}

func (f *filterFlags) reset() {
	f.scope, f.combinator, f.facets = "", "", nil
}

// build parses the flags into a filter, resolving facet terms by id or name.
func (f *filterFlags) build(ctx context.Context) (domain.LibraryFilter, error) {
	var filter domain.LibraryFilter
	if f.scope != "" {
		filter.Scope = domain.ParseScope(f.scope)
	}
	if f.combinator != "" {
		filter.Combinator = domain.ParseCombinator(f.combinator)
	}

	raw, err := parseFacetArgs(f.facets)
	if err != nil {
		return domain.LibraryFilter{}, err
	}
	filter.Facets = domain.NewFacetSelection(raw)

	if catalogService != nil && !filter.Facets.IsEmpty() {
		resolved, err := catalogService.ResolveSelection(ctx, filter.Facets)
		if err != nil {
			return domain.LibraryFilter{}, errors.Wrap(err, "resolving facets")
		}
		filter.Facets = resolved
	}
	return filter, nil
}

// parseFacetArgs splits name=term[,term] arguments. Unlike query strings,
// an unknown facet name on the command line is an error.
func parseFacetArgs(args []string) (map[string][]string, error) {
	raw := make(map[string][]string)
	for _, arg := range args {
		name, values, ok := strings.Cut(arg, "=")
		if !ok {
			return nil, errors.WithHint(
				errors.Newf("invalid facet %q", arg),
				"use name=term, for example --facet topics=ai")
		}
		if _, known := domain.ParseFacetKind(name); !known {
			return nil, errors.WithHint(
				errors.Wrapf(domain.ErrUnknownFacet, "%q", name),
				"facets are topics, categories, steep, regions and industries")
		}
		for _, v := range strings.Split(values, ",") {
			if v = strings.TrimSpace(v); v != "" {
				raw[name] = append(raw[name], v)
			}
		}
	}
	return raw, nil
}
