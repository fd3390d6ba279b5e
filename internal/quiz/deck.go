package quiz

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"

	_ "embed"
)

//go:embed deck_schema.json
var deckSchemaJSON []byte

//go:embed sample_deck.json
var sampleDeckJSON []byte

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

// deckSchema compiles the embedded deck schema once per process.
func deckSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		// The jsonschema library expects a parsed JSON value, not raw bytes.
		var parsed any
		if err := json.Unmarshal(deckSchemaJSON, &parsed); err != nil {
			schemaErr = fmt.Errorf("parse deck schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		const url = "schema://deck.json"
		if err := c.AddResource(url, parsed); err != nil {
			schemaErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiledSchema, schemaErr = c.Compile(url)
	})
	return compiledSchema, schemaErr
}

// ParseDeck validates raw deck JSON against the schema and decodes it.
func ParseDeck(data []byte) (*Deck, error) {
	schema, err := deckSchema()
	if err != nil {
		return nil, err
	}

	var parsed any
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("invalid deck JSON: %w", err)
	}
	if err := schema.Validate(parsed); err != nil {
		return nil, fmt.Errorf("deck schema validation failed: %w", err)
	}

	var deck Deck
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&deck); err != nil {
		return nil, fmt.Errorf("decode deck: %w", err)
	}
	if err := deck.validate(); err != nil {
		return nil, err
	}
	return &deck, nil
}

// LoadDeck reads and parses a deck file.
func LoadDeck(path string) (*Deck, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read deck: %w", err)
	}
	return ParseDeck(data)
}

// SampleDeck returns the built-in demo deck. The embedded deck is
// covered by tests, so a parse failure here is a packaging defect.
func SampleDeck() *Deck {
	deck, err := ParseDeck(sampleDeckJSON)
	if err != nil {
		panic(fmt.Sprintf("embedded sample deck: %v", err))
	}
	return deck
}
