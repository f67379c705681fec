package sitestore_test

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/hupe1980/sitestore"
)

func Example() {
	ctx := context.Background()

	root, err := os.MkdirTemp("", "sitestore")
	if err != nil {
		log.Fatal(err)
	}
	defer os.RemoveAll(root)

	store := sitestore.New(root)
	if err := store.Start(ctx); err != nil {
		log.Fatal(err)
	}
	defer store.Stop()

	type record struct {
		Site     string `json:"site"`
		Revision int    `json:"rev"`
	}

	if err := store.Docs.Write(ctx, "example.com", record{Site: "example.com", Revision: 1}); err != nil {
		log.Fatal(err)
	}
	if err := store.Blobs.Write(ctx, "example.com", 1, "index.html", []byte("<html/>")); err != nil {
		log.Fatal(err)
	}

	var rec record
	if err := store.Docs.Read(ctx, "example.com", &rec); err != nil {
		log.Fatal(err)
	}

	fmt.Println(rec.Site, rec.Revision)
	// Output: example.com 1
}
