package snapshot

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/horizon/internal/core/domain"
	"github.com/custodia-labs/horizon/internal/core/ports/driven"
	"github.com/custodia-labs/horizon/internal/logger"
)

// Ensure FileSource implements the interface.
var _ driven.SnapshotSource = (*FileSource)(nil)

// idNamespace scopes generated derived-entity ids.
var idNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/custodia-labs/horizon/derived"))

// File is the on-disk snapshot layout.
type File struct {
	Terms     TermLists      `yaml:"terms"`
	Documents []DocumentFile `yaml:"documents"`
	Derived   []DerivedFile  `yaml:"derived"`
}

// TermLists holds the catalog, one list per facet.
type TermLists struct {
	Topics     []TermFile `yaml:"topics"`
	Categories []TermFile `yaml:"categories"`
	Steep      []TermFile `yaml:"steep"`
	Regions    []TermFile `yaml:"regions"`
	Industries []TermFile `yaml:"industries"`
}

// TermFile is one catalog entry.
type TermFile struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
}

// TagLists holds an entity's term ids per facet.
type TagLists struct {
	Topics     []string `yaml:"topics"`
	Categories []string `yaml:"categories"`
	Steep      []string `yaml:"steep"`
	Regions    []string `yaml:"regions"`
	Industries []string `yaml:"industries"`
}

// DocumentFile is one document entry.
type DocumentFile struct {
	ID         string   `yaml:"id"`
	Title      string   `yaml:"title"`
	Summary    string   `yaml:"summary"`
	Owner      string   `yaml:"owner"`
	Visibility string   `yaml:"visibility"`
	SharedWith []string `yaml:"shared_with"`
	CreatedAt  string   `yaml:"created_at"`
	UpdatedAt  string   `yaml:"updated_at"`
	Tags       TagLists `yaml:"tags"`
}

// DerivedFile is one driver, trend, signal or evidence entry. ID may be
// omitted; a stable id is derived from kind, lineage and name.
type DerivedFile struct {
	ID          string   `yaml:"id"`
	Kind        string   `yaml:"kind"`
	Name        string   `yaml:"name"`
	Text        string   `yaml:"text"`
	DerivedFrom string   `yaml:"derived_from"`
	CreatedAt   string   `yaml:"created_at"`
	Tags        TagLists `yaml:"tags"`
}

// FileSource loads a snapshot from a file path.
type FileSource struct {
	path string
}

// NewFileSource creates a snapshot source for path.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Path returns the snapshot location.
func (s *FileSource) Path() string {
	return s.path
}

// Load reads, validates and converts the snapshot file.
func (s *FileSource) Load(ctx context.Context) (*domain.RawSnapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, errors.WithHint(
			errors.Wrapf(err, "reading snapshot %s", s.path),
			"check library.snapshot_path or pass a readable file")
	}
	snap, err := Parse(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrapf(err, "snapshot %s", s.path)
	}
	logger.Debug("Loaded snapshot %s: %d documents, %d derived", s.path, len(snap.Documents), len(snap.Derived))
	return snap, nil
}

// Parse decodes a YAML or JSON snapshot. Errors wrap
// domain.ErrInvalidSnapshot and carry a hint.
func Parse(r io.Reader) (*domain.RawSnapshot, error) {
	var f File
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true) // Reject unknown fields
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return &domain.RawSnapshot{}, nil
		}
		return nil, invalid(errors.Wrap(err, "parsing snapshot"),
			"fields are terms, documents and derived; tags use topics, categories, steep, regions, industries")
	}
	if err := validate(&f); err != nil {
		return nil, err
	}
	return f.toRaw(), nil
}

// invalid tags err as a snapshot validation failure. The sentinel stays in
// the unwrap chain.
func invalid(err error, hint string) error {
	return errors.WithHint(fmt.Errorf("%w: %w", domain.ErrInvalidSnapshot, err), hint)
}

func validate(f *File) error {
	seenDocs := make(map[string]struct{}, len(f.Documents))
	for i, d := range f.Documents {
		id := strings.TrimSpace(d.ID)
		if id == "" {
			return invalid(errors.Newf("document %d has no id", i), "every document needs a unique id")
		}
		if _, dup := seenDocs[id]; dup {
			return invalid(errors.Newf("duplicate document id %q", id), "document ids must be unique")
		}
		seenDocs[id] = struct{}{}
		for _, ts := range []string{d.CreatedAt, d.UpdatedAt} {
			if _, err := parseTime(ts); err != nil {
				return invalid(errors.Wrapf(err, "document %q", id), timeHint)
			}
		}
		if v := domain.ParseVisibility(d.Visibility); v == domain.VisibilityUnknown {
			logger.Warn("Document %s has unrecognised visibility %q; only its owner will see it", id, d.Visibility)
		}
	}

	seenDerived := make(map[string]struct{}, len(f.Derived))
	for i, e := range f.Derived {
		kind, ok := domain.ParseEntityKind(e.Kind)
		if !ok || !kind.IsDerived() {
			return invalid(errors.Newf("derived entry %d has kind %q", i, e.Kind),
				"kind must be driver, trend, signal or evidence")
		}
		if _, err := parseTime(e.CreatedAt); err != nil {
			return invalid(errors.Wrapf(err, "%s entry %d", kind, i), timeHint)
		}
		if strings.TrimSpace(e.DerivedFrom) == "" {
			return invalid(errors.Newf("%s entry %d has no derived_from", kind, i),
				"derived entities must name the document they came from")
		}
		if _, ok := seenDocs[strings.TrimSpace(e.DerivedFrom)]; !ok {
			logger.Warn("%s %q derives from unknown document %q; it will be hidden", kind, e.Name, e.DerivedFrom)
		}
		id := derivedID(kind, e)
		key := string(kind) + "/" + id
		if _, dup := seenDerived[key]; dup {
			return invalid(errors.Newf("duplicate %s id %q", kind, id), "give each derived entity a unique id or name")
		}
		seenDerived[key] = struct{}{}
	}

	for _, d := range f.Documents {
		if len(d.Tags.Steep) > 0 || len(d.Tags.Industries) > 0 {
			logger.Warn("Document %s has steep or industry tags; documents carry topics, categories and regions only", d.ID)
		}
	}
	return nil
}

const timeHint = "timestamps are RFC 3339 (2024-05-01T09:30:00Z) or plain dates (2024-05-01)"

// timeLayouts are tried in order. An empty value is the zero time.
var timeLayouts = []string{time.RFC3339Nano, "2006-01-02T15:04:05", time.DateOnly}

func parseTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, errors.Newf("unrecognised timestamp %q", s)
}

// mustTime is only called after validate has accepted the value.
func mustTime(s string) time.Time {
	t, _ := parseTime(s)
	return t
}

// derivedID returns the entity id, generating a deterministic one when absent.
func derivedID(kind domain.EntityKind, e DerivedFile) string {
	if id := strings.TrimSpace(e.ID); id != "" {
		return id
	}
	name := string(kind) + "\x00" + strings.TrimSpace(e.DerivedFrom) + "\x00" + strings.TrimSpace(e.Name) + "\x00" + e.Text
	return uuid.NewSHA1(idNamespace, []byte(name)).String()
}

func (f *File) toRaw() *domain.RawSnapshot {
	raw := &domain.RawSnapshot{}

	addTerms := func(kind domain.FacetKind, terms []TermFile) {
		for _, t := range terms {
			raw.Terms = append(raw.Terms, domain.RawTerm{Facet: string(kind), ID: t.ID, DisplayName: t.Name})
		}
	}
	addTerms(domain.FacetTopic, f.Terms.Topics)
	addTerms(domain.FacetCategory, f.Terms.Categories)
	addTerms(domain.FacetSteep, f.Terms.Steep)
	addTerms(domain.FacetRegion, f.Terms.Regions)
	addTerms(domain.FacetIndustry, f.Terms.Industries)

	addTags := func(kind domain.EntityKind, id string, tags TagLists) {
		for _, facet := range domain.FacetKinds {
			for _, term := range tags.forFacet(facet) {
				raw.Taggings = append(raw.Taggings, domain.RawTagging{
					EntityKind: string(kind), EntityID: id, Facet: string(facet), TermID: term,
				})
			}
		}
	}

	for _, d := range f.Documents {
		id := strings.TrimSpace(d.ID)
		raw.Documents = append(raw.Documents, domain.RawDocument{
			ID:         id,
			Title:      d.Title,
			Summary:    d.Summary,
			OwnerID:    d.Owner,
			Visibility: d.Visibility,
			SharedWith: d.SharedWith,
			CreatedAt:  mustTime(d.CreatedAt),
			UpdatedAt:  mustTime(d.UpdatedAt),
		})
		addTags(domain.KindDocument, id, d.Tags)
	}

	for _, e := range f.Derived {
		kind, _ := domain.ParseEntityKind(e.Kind)
		id := derivedID(kind, e)
		raw.Derived = append(raw.Derived, domain.RawDerived{
			ID:          id,
			Kind:        string(kind),
			Name:        e.Name,
			Text:        e.Text,
			DerivedFrom: strings.TrimSpace(e.DerivedFrom),
			CreatedAt:   mustTime(e.CreatedAt),
		})
		addTags(kind, id, e.Tags)
	}

	return raw
}

func (t TagLists) forFacet(kind domain.FacetKind) []string {
	switch kind {
	case domain.FacetTopic:
		return t.Topics
	case domain.FacetCategory:
		return t.Categories
	case domain.FacetSteep:
		return t.Steep
	case domain.FacetRegion:
		return t.Regions
	case domain.FacetIndustry:
		return t.Industries
	default:
		return nil
	}
}
