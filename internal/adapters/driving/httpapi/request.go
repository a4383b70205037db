package httpapi

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/custodia-labs/horizon/internal/core/domain"
)

// viewerFrom reads the viewer from the request. A missing or blank header
// is anonymous.
func viewerFrom(r *http.Request) domain.Viewer {
	return domain.Member(strings.TrimSpace(r.Header.Get(ViewerHeader)))
}

// filterFrom builds a filter from query parameters. Any parameter named
// after a facet (topic, topics, steep, regions, ...) selects terms; values
// may repeat or be comma separated. Empty scope and combinator are left for
// the service to default.
func (s *Server) filterFrom(ctx context.Context, q url.Values) (domain.LibraryFilter, error) {
	var filter domain.LibraryFilter
	if v := q.Get("scope"); v != "" {
		filter.Scope = domain.ParseScope(v)
	}
	if v := q.Get("combinator"); v != "" {
		filter.Combinator = domain.ParseCombinator(v)
	}

	raw := make(map[string][]string)
	for name, values := range q {
		if _, ok := domain.ParseFacetKind(name); !ok {
			continue
		}
		for _, v := range values {
			for _, part := range strings.Split(v, ",") {
				if part = strings.TrimSpace(part); part != "" {
					raw[name] = append(raw[name], part)
				}
			}
		}
	}
	filter.Facets = domain.NewFacetSelection(raw)

	if s.catalog != nil && !filter.Facets.IsEmpty() {
		resolved, err := s.catalog.ResolveSelection(ctx, filter.Facets)
		if err != nil {
			return domain.LibraryFilter{}, errors.Wrap(err, "resolving facets")
		}
		filter.Facets = resolved
	}
	return filter, nil
}

// windowsFrom reads "limit" for every collection and "limit_<collection>"
// (limit_documents, limit_trends, ...) for one.
func windowsFrom(q url.Values) (domain.PageWindows, error) {
	windows := make(domain.PageWindows)
	if v := q.Get("limit"); v != "" {
		n, err := parseLimit("limit", v)
		if err != nil {
			return nil, err
		}
		for _, kind := range domain.EntityKinds {
			windows[kind] = n
		}
	}
	for _, kind := range domain.EntityKinds {
		name := "limit_" + kind.Plural()
		if v := q.Get(name); v != "" {
			n, err := parseLimit(name, v)
			if err != nil {
				return nil, err
			}
			windows[kind] = n
		}
	}
	return windows, nil
}

func parseLimit(name, v string) (int, error) {
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return 0, errors.Mark(
			errors.WithHint(errors.Newf("invalid %s %q", name, v), "limits are positive integers"),
			domain.ErrInvalidInput)
	}
	return n, nil
}

// kindFrom parses a path segment into an entity kind.
func kindFrom(v string) (domain.EntityKind, error) {
	kind, ok := domain.ParseEntityKind(v)
	if !ok {
		return "", errors.WithHint(
			errors.Wrapf(domain.ErrUnknownEntityKind, "%q", v),
			"kinds are documents, drivers, trends, signals and evidence")
	}
	return kind, nil
}
