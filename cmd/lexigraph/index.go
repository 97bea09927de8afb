package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/fulmenhq/lexigraph/anagram"
	"github.com/fulmenhq/lexigraph/ascii"
)

func runIndex(args []string) error {
	fs := flag.NewFlagSet("index", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	mf := registerModelFlags(fs)
	format := fs.String("format", "text", "output format (text|json|table)")
	onlyGroups := fs.Bool("only-groups", true, "dump only buckets with more than one entry")
	if err := fs.Parse(args); err != nil {
		return err
	}

	result, err := mf.build(context.Background())
	if err != nil {
		return fmt.Errorf("index: %w", err)
	}

	type bucketDump struct {
		Key     string   `json:"anagram_key"`
		Entries []string `json:"entries"`
	}

	var buckets []bucketDump
	result.Index.Buckets(func(av anagram.Value, ids []int) bool {
		if *onlyGroups && len(ids) < 2 {
			return true
		}
		texts := make([]string, 0, len(ids))
		for _, id := range ids {
			if e, ok := result.Vocabulary.Get(id); ok {
				texts = append(texts, e.Text)
			}
		}
		sort.Strings(texts)
		buckets = append(buckets, bucketDump{Key: av.Key(), Entries: texts})
		return true
	})

	sort.Slice(buckets, func(i, j int) bool { return buckets[i].Key < buckets[j].Key })

	if *format == "json" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(buckets)
	}

	if *format == "table" {
		header := []string{"anagram_key", "entries"}
		rows := make([][]string, len(buckets))
		for i, b := range buckets {
			rows[i] = []string{b.Key, strings.Join(b.Entries, ", ")}
		}
		_, err := fmt.Print(ascii.Table(header, rows))
		return err
	}

	for _, b := range buckets {
		fmt.Printf("%s", b.Key)
		for _, t := range b.Entries {
			fmt.Printf("\t%s", t)
		}
		fmt.Println()
	}
	return nil
}
