// Package dataset loads the Unicode Character Database tables from
// disk and bundles the resulting read-only indices. Loading happens
// once, before any query traffic; everything in a Dataset is immutable
// afterwards and safe for concurrent readers.
package dataset

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/jusunglee/unicodeutil/internal/blocks"
	"github.com/jusunglee/unicodeutil/internal/casefold"
	"github.com/jusunglee/unicodeutil/internal/ucd"
)

// File names as published in the UCD.
const (
	UnicodeDataFile = "UnicodeData.txt"
	BlocksFile      = "Blocks.txt"
	CaseFoldingFile = "CaseFolding.txt"
)

// Dataset bundles the parsed tables.
type Dataset struct {
	Chars  *ucd.Store
	Blocks *blocks.Index
	Folds  *casefold.Table
}

// Load parses UnicodeData.txt, Blocks.txt, and CaseFolding.txt under
// dir. The three tables parse concurrently; the first failure aborts
// the load and no partially built dataset is returned.
func Load(ctx context.Context, dir string) (*Dataset, error) {
	var ds Dataset
	g, _ := errgroup.WithContext(ctx)

	g.Go(func() error {
		f, err := os.Open(filepath.Join(dir, UnicodeDataFile))
		if err != nil {
			return err
		}
		defer f.Close()
		chars, err := ucd.Parse(f)
		if err != nil {
			return fmt.Errorf("%s: %w", UnicodeDataFile, err)
		}
		ds.Chars, err = ucd.NewStore(chars)
		if err != nil {
			return fmt.Errorf("%s: %w", UnicodeDataFile, err)
		}
		return nil
	})

	g.Go(func() error {
		f, err := os.Open(filepath.Join(dir, BlocksFile))
		if err != nil {
			return err
		}
		defer f.Close()
		if ds.Blocks, err = blocks.Parse(f); err != nil {
			return fmt.Errorf("%s: %w", BlocksFile, err)
		}
		return nil
	})

	g.Go(func() error {
		f, err := os.Open(filepath.Join(dir, CaseFoldingFile))
		if err != nil {
			return err
		}
		defer f.Close()
		if ds.Folds, err = casefold.ParseTable(f); err != nil {
			return fmt.Errorf("%s: %w", CaseFoldingFile, err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &ds, nil
}
