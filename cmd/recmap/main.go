package main

import (
	"fmt"
	"log"
	"os"

	"github.com/tinywasm/recordmap"
)

func main() {
	if len(os.Args) != 3 {
		log.Fatal("usage: recmap <schema.json> <table-name>")
	}

	data, err := os.ReadFile(os.Args[1])
	if err != nil {
		log.Fatalf("recmap: %v", err)
	}

	store := recordmap.NewRecordStore()
	store.SetLog(func(messages ...any) {
		fmt.Fprintln(os.Stderr, messages...)
	})

	desc, err := store.CreateType(data)
	if err != nil {
		log.Fatalf("recmap: %v", err)
	}

	gen := recordmap.NewSQLGenerator()
	gen.SetDescriptor(desc)
	gen.SetTableName(os.Args[2])

	fmt.Println(store.InspectStructure())
	fmt.Println()

	queries := []func() (string, error){
		gen.CreateTableQuery,
		gen.SelectQuery,
		gen.InsertQuery,
		gen.UpdateQuery,
		gen.DeleteQuery,
	}
	for _, q := range queries {
		text, err := q()
		if err != nil {
			log.Fatalf("recmap: %v", err)
		}
		fmt.Println(text)
	}
}
