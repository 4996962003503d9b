// Copyright 2024 Ross Light
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//		 https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
// Package notionschema checks encoded blocks against a JSON Schema
// of the Notion block objects this module produces.
package notionschema

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schema.json
var schemaData []byte

const schemaURL = "notion-blocks.json"

type schemas struct {
	payload *jsonschema.Schema
	block   *jsonschema.Schema
}

var loadSchemas = sync.OnceValues(func() (*schemas, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource(schemaURL, bytes.NewReader(schemaData)); err != nil {
		return nil, err
	}
	payload, err := compiler.Compile(schemaURL)
	if err != nil {
		return nil, err
	}
	block, err := compiler.Compile(schemaURL + "#/$defs/block")
	if err != nil {
		return nil, err
	}
	return &schemas{payload: payload, block: block}, nil
})

// ValidatePayload reports whether data is a valid {"children": [...]} request body.
func ValidatePayload(data []byte) error {
	s, err := loadSchemas()
	if err != nil {
		return fmt.Errorf("validate payload: compile schema: %w", err)
	}
	if err := validate(s.payload, data); err != nil {
		return fmt.Errorf("validate payload: %w", err)
	}
	return nil
}

// ValidateBlock reports whether data is a valid top-level block object.
func ValidateBlock(data []byte) error {
	s, err := loadSchemas()
	if err != nil {
		return fmt.Errorf("validate block: compile schema: %w", err)
	}
	if err := validate(s.block, data); err != nil {
		return fmt.Errorf("validate block: %w", err)
	}
	return nil
}

func validate(schema *jsonschema.Schema, data []byte) error {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	return schema.Validate(doc)
}
