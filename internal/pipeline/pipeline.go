// Package pipeline orchestrates per-record extraction: each input document
// is walked section by section in a fixed order, growing the shared graph
// store through the normalizer, classifier, temporal resolver and factoid
// builder. Sections are independently skippable; a malformed sub-section is
// skipped without affecting its siblings.
package pipeline

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"hash/fnv"
	"io"
	"os"

	"github.com/studium-parisiense/daphne/internal/classify"
	"github.com/studium-parisiense/daphne/internal/graph"
	"github.com/studium-parisiense/daphne/internal/model"
	"github.com/studium-parisiense/daphne/internal/temporal"
	"github.com/studium-parisiense/daphne/internal/text"
)

// maxLineBytes bounds a single JSONL record
const maxLineBytes = 16 * 1024 * 1024

// Stats counts stream-level outcomes for the run summary
type Stats struct {
	Records   int // records fully processed
	Malformed int // unparsable lines, reported and skipped
	Dropped   int // records without a usable primary name, counted silently
}

// Pipeline is the per-record extraction orchestrator
type Pipeline struct {
	cleaner *text.Cleaner
	index   *classify.Index
	store   *graph.Store
	builder *graph.Builder

	progressEvery int

	Stats Stats
}

// New creates a pipeline writing into the given store
func New(cleaner *text.Cleaner, index *classify.Index, store *graph.Store, cfg *model.Config) *Pipeline {
	return &Pipeline{
		cleaner:       cleaner,
		index:         index,
		store:         store,
		builder:       graph.NewBuilder(store, index),
		progressEvery: cfg.Extract.ProgressEvery,
	}
}

// Run consumes the JSONL stream one record at a time, in stream order.
// Unparsable lines are reported and skipped; the stream continues.
func (p *Pipeline) Run(ctx context.Context, r io.Reader) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxLineBytes)

	lineNo := 0
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		lineNo++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var rec model.Record
		if err := json.Unmarshal(line, &rec); err != nil {
			p.Stats.Malformed++
			fmt.Fprintf(os.Stderr, "Warning: skipping malformed line %d: %v\n", lineNo, err)
			continue
		}

		p.Process(rec)

		if p.progressEvery > 0 && p.Stats.Records%p.progressEvery == 0 && p.Stats.Records > 0 {
			fmt.Fprintf(os.Stderr, "  ... %d records processed\n", p.Stats.Records)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	return nil
}

// Process walks one record's biographical sections in the fixed order. A
// record without a usable primary name is dropped entirely with no nodes
// created.
func (p *Pipeline) Process(rec model.Record) {
	personName, ok := p.processIdentity(rec)
	if !ok {
		p.Stats.Dropped++
		return
	}

	p.processPeriodDates(rec.Identity.DatesOfActivity, rec.ID, personName, model.FactoidActivityPeriod,
		fmt.Sprintf("Activity period of %s", personName))
	p.processPeriodDates(rec.Identity.DatesOfLife, rec.ID, personName, model.FactoidLifePeriod,
		fmt.Sprintf("Life period of %s", personName))

	p.processOrigin(rec, personName)
	p.processCurriculum(rec, personName)
	p.processEcclesiasticalCareer(rec, personName)
	p.processProfessionalCareer(rec, personName)
	p.processRelationships(rec, personName)
	p.processProduction(rec, personName)
	p.processBibliography(rec)

	p.Stats.Records++
}

// processIdentity creates the Source, Person and Name nodes and their edges.
// Returns false when no usable primary name exists.
func (p *Pipeline) processIdentity(rec model.Record) (string, bool) {
	personName, ok := p.cleaner.Clean(model.FirstValue(rec.Identity.Name))
	if !ok {
		return "", false
	}

	sourceID := model.SourceID(rec.ID)
	p.store.PutSource(model.Source{
		ID:        sourceID,
		Name:      rec.Title,
		Reference: rec.Reference,
		Link:      rec.Link,
	})

	gender := model.FirstValue(rec.Identity.Gender)
	shortDesc := model.FirstValue(rec.Identity.ShortDescription)
	status := model.FirstValue(rec.Identity.Status)

	p.store.EnsurePerson(personName, gender, shortDesc, status)
	p.store.AddEdge(model.Edge{Type: model.EdgeBelongsTo, FromID: personName, ToID: sourceID})

	p.store.EnsureName(personName)
	p.store.AddEdge(model.Edge{Type: model.EdgeMainName, FromID: personName, ToID: personName})

	for _, nv := range rec.Identity.NameVariant {
		v, ok := p.cleaner.Clean(nv.Value)
		if ok && v != personName {
			p.store.EnsureName(v)
			p.store.AddEdge(model.Edge{Type: model.EdgeNamed, FromID: personName, ToID: v})
		}
	}
	return personName, true
}

// processPeriodDates emits one factoid per usable date tuple found in an
// activity/life date section
func (p *Pipeline) processPeriodDates(items []model.Field, recordID, personName string, ftype model.FactoidType, description string) {
	for _, item := range items {
		for _, d := range temporal.ExtractDates(item.Meta) {
			if d.Empty() {
				continue
			}
			fid := p.builder.NewFactoid(recordID, ftype, description, "", "")
			p.builder.LinkParticipant(fid, personName, model.RoleSubject, "")
			p.builder.LinkTime(fid, d.Start, d.End, d.StartQualifier, d.EndQualifier)
		}
	}
}

// processOrigin handles birth places and diocesan origin
func (p *Pipeline) processOrigin(rec model.Record, personName string) {
	for _, item := range rec.Origin.BirthPlace {
		places := p.cleanValues(item.Meta.Places)
		if len(places) == 0 {
			continue
		}
		fid := p.builder.NewFactoid(rec.ID, model.FactoidBirth,
			fmt.Sprintf("Birth of %s", personName), "", "")
		p.builder.LinkParticipant(fid, personName, model.RoleSubject, "")
		certainty := uncertaintyFlag(item.Meta.Places)
		for _, place := range places {
			p.builder.LinkPlace(fid, place, certainty)
		}
	}

	for _, item := range rec.Origin.Diocese {
		for _, inst := range item.Meta.Institutions {
			gname, _, ok := p.classify(inst)
			if !ok {
				continue
			}
			fid := p.builder.NewFactoid(rec.ID, model.FactoidDioceseOrigin,
				fmt.Sprintf("Diocesan origin of %s: %s", personName, gname), "", "")
			p.builder.LinkParticipant(fid, personName, model.RoleSubject, "")
			p.builder.LinkZone(fid, gname)
		}
	}
}

// processCurriculum handles university study, grades and college membership
func (p *Pipeline) processCurriculum(rec model.Record, personName string) {
	// A study factoid requires at least one place or institution.
	for _, item := range rec.Curriculum.University {
		places := p.cleanValues(item.Meta.Places)
		groups := p.classifyValues(item.Meta.Institutions)
		if len(places) == 0 && len(groups) == 0 {
			continue
		}
		fid := p.builder.NewFactoid(rec.ID, model.FactoidUniversityStudy,
			fmt.Sprintf("Studies of %s", personName), "", "")
		p.builder.LinkParticipant(fid, personName, model.RoleStudent, "")
		p.builder.LinkTimeFromDates(fid, temporal.ExtractDates(item.Meta))
		placeCert := uncertaintyFlag(item.Meta.Places)
		for _, place := range places {
			p.builder.LinkPlace(fid, place, placeCert)
		}
		instCert := uncertaintyFlag(item.Meta.Institutions)
		for _, g := range groups {
			p.builder.LinkGroup(fid, g, instCert)
		}
	}

	// A grade factoid is emitted whenever a grade value is present, with or
	// without place.
	for _, item := range rec.Curriculum.Grades {
		grade, _ := p.cleaner.Clean(item.Value)
		fid := p.builder.NewFactoid(rec.ID, model.FactoidAcademicGrade,
			fmt.Sprintf("Grade of %s: %s", personName, grade), "", "")
		p.builder.LinkParticipant(fid, personName, model.RoleStudent, grade)
		p.builder.LinkTimeFromDates(fid, temporal.ExtractDates(item.Meta))
		placeCert := uncertaintyFlag(item.Meta.Places)
		for _, place := range p.cleanValues(item.Meta.Places) {
			p.builder.LinkPlace(fid, place, placeCert)
		}
		if grade != "" {
			p.store.EnsureRank(grade)
		}
	}

	for _, item := range rec.Curriculum.UniversityCollege {
		instCert := uncertaintyFlag(item.Meta.Institutions)
		for _, g := range p.classifyValues(item.Meta.Institutions) {
			fid := p.builder.NewFactoid(rec.ID, model.FactoidCollegeMembership,
				fmt.Sprintf("%s member of %s", personName, g), "", "")
			p.builder.LinkParticipant(fid, personName, model.RoleMember, "")
			p.builder.LinkGroup(fid, g, instCert)
		}
	}
}

// processEcclesiasticalCareer handles secular positions and regular orders
func (p *Pipeline) processEcclesiasticalCareer(rec model.Record, personName string) {
	for _, item := range rec.EcclesiasticalCareer.SecularPosition {
		position, _ := p.cleaner.Clean(item.Value)
		dates := temporal.ExtractDates(item.Meta)
		instCert := uncertaintyFlag(item.Meta.Institutions)
		for _, g := range p.classifyValues(item.Meta.Institutions) {
			fid := p.builder.NewFactoid(rec.ID, model.FactoidSecularPosition,
				fmt.Sprintf("%s: %s at %s", personName, position, g), "", "")
			p.builder.LinkParticipant(fid, personName, model.RoleHolder, "")
			p.builder.LinkGroup(fid, g, instCert)
			p.builder.LinkTimeFromDates(fid, dates)
		}
	}

	for _, item := range rec.EcclesiasticalCareer.RegularOrder {
		order, _ := p.cleaner.Clean(item.Value)
		dates := temporal.ExtractDates(item.Meta)
		instCert := uncertaintyFlag(item.Meta.Institutions)
		for _, g := range p.classifyValues(item.Meta.Institutions) {
			fid := p.builder.NewFactoid(rec.ID, model.FactoidRegularOrder,
				fmt.Sprintf("%s: %s in %s", personName, order, g), "", "")
			p.builder.LinkParticipant(fid, personName, model.RoleMember, "")
			p.builder.LinkGroup(fid, g, instCert)
			p.builder.LinkTimeFromDates(fid, dates)
		}
	}
}

// processProfessionalCareer handles university teaching functions
func (p *Pipeline) processProfessionalCareer(rec model.Record, personName string) {
	for _, item := range rec.ProfessionalCareer.UniversityFunction {
		function, _ := p.cleaner.Clean(item.Value)
		places := p.cleanValues(item.Meta.Places)
		groups := p.classifyValues(item.Meta.Institutions)
		if len(places) == 0 && len(groups) == 0 {
			continue
		}
		fid := p.builder.NewFactoid(rec.ID, model.FactoidUniversityTeaching,
			fmt.Sprintf("%s: %s", personName, function), "", "")
		p.builder.LinkParticipant(fid, personName, model.RoleTeacher, "")
		p.builder.LinkTimeFromDates(fid, temporal.ExtractDates(item.Meta))
		placeCert := uncertaintyFlag(item.Meta.Places)
		for _, place := range places {
			p.builder.LinkPlace(fid, place, placeCert)
		}
		instCert := uncertaintyFlag(item.Meta.Institutions)
		for _, g := range groups {
			p.builder.LinkGroup(fid, g, instCert)
		}
	}
}

// processRelationships handles family and student-teacher relations. Persons
// mentioned only as relationship targets are created with minimal attributes
// and enriched only by later evidence.
func (p *Pipeline) processRelationships(rec model.Record, personName string) {
	for _, item := range rec.RelationalInsertion.FamilyNetwork {
		relationType, _ := p.cleaner.Clean(item.Value)
		for _, rawName := range item.Meta.Names {
			cname, ok := p.cleaner.CleanPersonName(rawName)
			if !ok {
				continue
			}
			p.store.EnsurePerson(cname, "", "", "")
			fid := p.builder.NewFactoid(rec.ID, model.FactoidFamilyRelation,
				fmt.Sprintf("Family relation: %s - %s (%s)", personName, cname, relationType), "", "")
			p.builder.LinkParticipant(fid, personName, model.RoleSubject, "")
			p.builder.LinkParticipant(fid, cname, model.RoleFamilyMember, "")
		}
	}

	for _, item := range rec.RelationalInsertion.StudentProfessorRelations {
		for _, rawName := range item.Meta.Names {
			cname, ok := p.cleaner.CleanPersonName(rawName)
			if !ok {
				continue
			}
			p.store.EnsurePerson(cname, "", "", "")
			fid := p.builder.NewFactoid(rec.ID, model.FactoidStudentTeacher,
				fmt.Sprintf("Student-teacher relation: %s - %s", personName, cname), "", "")
			p.builder.LinkParticipant(fid, personName, model.RoleStudent, "")
			p.builder.LinkParticipant(fid, cname, model.RoleTeacher, "")
		}
	}
}

// processProduction handles authored works grouped by subject domain
func (p *Pipeline) processProduction(rec model.Record, personName string) {
	for domainName, section := range rec.TextualProduction {
		if !section.IsObject() {
			continue
		}
		if domainName != "" {
			p.store.EnsureDomain(domainName)
		}
		for _, opus := range section.Opus {
			title, ok := p.cleaner.Clean(opus.MainTitle)
			if !ok {
				continue
			}
			p.store.EnsureObject(title)
			p.store.EnsureObjectType(model.ObjectTypeLiteraryWork, "Literary / intellectual work")
			fid := p.builder.NewFactoid(rec.ID, model.FactoidAuthorship,
				fmt.Sprintf("%s author of '%s'", personName, title), "", "")
			p.builder.LinkParticipant(fid, personName, model.RoleAuthor, "")
			p.store.AddEdge(model.Edge{Type: model.EdgeOfType, FromID: fid, ToID: title})
		}
	}
}

// processBibliography cross-links the record source to synthetic sources for
// cited works and books
func (p *Pipeline) processBibliography(rec model.Record) {
	sections := []struct {
		name  string
		items []model.Field
	}{
		{"workReferences", rec.Bibliography.WorkReferences},
		{"bookReferences", rec.Bibliography.BookReferences},
	}
	for _, section := range sections {
		for _, item := range section.items {
			citation, ok := p.cleaner.Clean(item.Value)
			if !ok {
				continue
			}
			bibID := citationSourceID(citation)
			p.store.EnsureSource(model.Source{ID: bibID, Name: citation})
			p.store.AddEdge(model.Edge{
				Type:     model.EdgeLinkedTo,
				FromID:   model.SourceID(rec.ID),
				ToID:     bibID,
				LinkType: section.name,
			})
		}
	}
}

// citationSourceID derives a stable content hash for a bibliographic citation
func citationSourceID(citation string) string {
	h := fnv.New32a()
	h.Write([]byte(citation))
	return fmt.Sprintf("BIB_%08d", h.Sum32()%100_000_000)
}

// cleanValues cleans each raw value, dropping empties and stop words
func (p *Pipeline) cleanValues(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if cleaned, ok := p.cleaner.Clean(v); ok {
			out = append(out, cleaned)
		}
	}
	return out
}

// classify routes one raw name through the classification index and interns
// the Domain or GroupP node the decision resolves to. The node exists from
// the moment of classification, even when no edge ever reaches it.
func (p *Pipeline) classify(raw string) (string, classify.Class, bool) {
	gname, cls, ok := p.index.Classify(raw)
	if !ok {
		return "", "", false
	}
	p.builder.EnsureClassified(gname, cls)
	return gname, cls, ok
}

// classifyValues routes each raw institution name through the classification
// index, returning the canonical names
func (p *Pipeline) classifyValues(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if gname, _, ok := p.classify(v); ok {
			out = append(out, gname)
		}
	}
	return out
}

// uncertaintyFlag reports "uncertain" when any raw value carries the marker
func uncertaintyFlag(values []string) string {
	if text.IsUncertain(values) {
		return "uncertain"
	}
	return ""
}
