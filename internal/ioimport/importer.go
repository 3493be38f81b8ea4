// Package ioimport loads catalog records from YAML files. Every record
// is written through the catalog, so an import obeys the same
// validation and identity rules as any other write. Records are not
// imported atomically as a whole: a failed record stops the import and
// keeps everything imported before it.
package ioimport

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/dustin/go-humanize"
	"github.com/gnames/bosdb/pkg/bosdb"
	"github.com/gnames/bosdb/pkg/catalog"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"gopkg.in/yaml.v3"
)

type importer struct {
	cat      bosdb.Catalog
	progress io.Writer

	// refs maps reference keys of the file to stored reference ids.
	refs  map[string]int64
	stats bosdb.ImportStats
}

// New creates an importer. Progress is drawn to progress, nil disables
// the progress bar.
func New(cat bosdb.Catalog, progress io.Writer) bosdb.Importer {
	return &importer{cat: cat, progress: progress}
}

func (im *importer) Import(
	ctx context.Context,
	path string,
) (bosdb.ImportStats, error) {
	im.refs = make(map[string]int64)
	im.stats = bosdb.ImportStats{}
	start := time.Now()

	f, err := readFile(path)
	if err != nil {
		return im.stats, err
	}

	bar := im.newBar(f.size())
	err = im.load(ctx, f, bar)
	bar.Finish()
	if err != nil {
		return im.stats, err
	}

	dur := gnfmt.TimeString(time.Since(start).Seconds())
	slog.Info("Import finished",
		"path", path,
		"items", im.stats.Items,
		"duration", dur,
	)
	gn.Info(
		"Imported <em>%s</em> items, %s satellites, %s references "+
			"in %s categories (%s)",
		humanize.Comma(int64(im.stats.Items)),
		humanize.Comma(int64(im.stats.Satellites)),
		humanize.Comma(int64(im.stats.References)),
		humanize.Comma(int64(im.stats.Categories)),
		dur,
	)
	return im.stats, nil
}

func (im *importer) load(
	ctx context.Context,
	f catalogFile,
	bar *pb.ProgressBar,
) error {
	for _, v := range f.References {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := im.reference(ctx, v); err != nil {
			return err
		}
		bar.Increment()
	}

	for _, v := range f.Categories {
		if err := im.category(ctx, v, bar); err != nil {
			return err
		}
	}
	return nil
}

func readFile(path string) (catalogFile, error) {
	var res catalogFile
	bs, err := os.ReadFile(path)
	if err != nil {
		return res, ReadError(path, err)
	}
	if err = yaml.Unmarshal(bs, &res); err != nil {
		return res, ParseError(path, err)
	}
	return res, nil
}

func (im *importer) newBar(total int) *pb.ProgressBar {
	bar := pb.Full.New(total)
	if im.progress == nil {
		bar.SetWriter(io.Discard)
	} else {
		bar.SetWriter(im.progress)
	}
	bar.Set("prefix", "Importing ")
	bar.Set(pb.CleanOnFinish, true)
	return bar.Start()
}

func (im *importer) reference(ctx context.Context, rec referenceRec) error {
	name := fmt.Sprintf("reference %q", rec.Key)
	if rec.Key == "" {
		return RecordError(name,
			catalog.ValidationError("reference key", "cannot be empty"))
	}
	if _, ok := im.refs[rec.Key]; ok {
		return RecordError(name,
			catalog.ValidationError("reference key", "is not unique"))
	}

	ref, err := im.cat.CreateReference(ctx, rec.Location)
	if err != nil {
		return RecordError(name, err)
	}
	im.refs[rec.Key] = ref.ID
	im.stats.References++

	for _, v := range rec.Info {
		info, err := im.cat.AttachInfo(ctx, ref.ID, catalog.ReferenceInfo{
			Category: v.Category,
			Title:    v.Title,
			Subtitle: v.Subtitle,
			Year:     v.Year,
		})
		if err != nil {
			return RecordError(name, err)
		}
		for _, a := range v.Authors {
			if _, err = im.cat.AddAuthor(ctx, info.ID, a); err != nil {
				return RecordError(name, err)
			}
		}
	}
	return nil
}

func (im *importer) category(
	ctx context.Context,
	rec categoryRec,
	bar *pb.ProgressBar,
) error {
	name := fmt.Sprintf("category %q", rec.Name)
	cat, err := im.cat.EnsureCategory(ctx, rec.Name, rec.Note)
	if err != nil {
		return RecordError(name, err)
	}
	im.stats.Categories++
	bar.Increment()

	for _, v := range rec.Herbs {
		if err = ctx.Err(); err != nil {
			return err
		}
		if err = im.herb(ctx, cat.ID, v); err != nil {
			return err
		}
		bar.Increment()
	}

	for _, v := range rec.Recipes {
		steps := make([]catalog.RecipeStep, len(v.Steps))
		for i, s := range v.Steps {
			steps[i] = catalog.RecipeStep{StepNumber: s.Number, StepText: s.Text}
		}
		_, err = im.cat.CreateRecipe(ctx, cat.ID, v.Name, v.Information, steps)
		if err != nil {
			return RecordError(fmt.Sprintf("recipe %q", v.Name), err)
		}
		im.stats.Recipes++
		bar.Increment()
	}

	for _, v := range rec.Vocabulary {
		record := fmt.Sprintf("term %q", v.Term)
		refID, err := im.refID(record, v.Reference)
		if err != nil {
			return err
		}
		_, err = im.cat.CreateVocab(ctx, cat.ID, v.Term, v.Definition, refID)
		if err != nil {
			return RecordError(record, err)
		}
		im.stats.Vocabulary++
		bar.Increment()
	}
	return nil
}

func (im *importer) herb(ctx context.Context, categoryID int64, rec herbRec) error {
	record := fmt.Sprintf("herb %q", rec.Name)
	refID, err := im.refID(record, rec.Reference)
	if err != nil {
		return err
	}

	item, err := im.cat.CreateHerb(ctx, categoryID, catalog.HerbAttrs{
		ReferenceID:  refID,
		Name:         rec.Name,
		Appearance:   rec.Appearance,
		Information:  rec.Information,
		Consumable:   rec.Consumable,
		Edible:       rec.Edible,
		OpenPractice: rec.OpenPractice,
		Reason:       rec.Reason,
	})
	if err != nil {
		return RecordError(record, err)
	}
	im.stats.Items++

	for _, v := range rec.Aliases {
		if _, err = im.cat.AttachAlias(ctx, item.ID, v); err != nil {
			return RecordError(record, err)
		}
		im.stats.Satellites++
	}
	for _, v := range rec.ChemicalComponents {
		_, err = im.cat.AttachChemicalComponent(ctx, item.ID, v.Name, v.Rank)
		if err != nil {
			return RecordError(record, err)
		}
		im.stats.Satellites++
	}
	for _, v := range rec.Effects {
		if _, err = im.cat.AttachEffect(ctx, item.ID, v); err != nil {
			return RecordError(record, err)
		}
		im.stats.Satellites++
	}
	for _, v := range rec.Citations {
		if _, err = im.cat.AttachReference(ctx, item.ID, v); err != nil {
			return RecordError(record, err)
		}
		im.stats.Satellites++
	}
	return nil
}

func (im *importer) refID(record, key string) (*int64, error) {
	if key == "" {
		return nil, nil
	}
	id, ok := im.refs[key]
	if !ok {
		return nil, UnknownReferenceError(record, key)
	}
	return &id, nil
}
