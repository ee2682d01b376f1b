package llm

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/santhosh-tekuri/jsonschema/v6/kind"
)

// compiledSchemas holds one compiled schema per Schema.Name.
var compiledSchemas sync.Map

// checkReply is the last step of every adapter. A structured reply cut off
// by the token limit is reported as truncated, a plain reply must not be
// blank, and structured content is unfenced and validated.
func checkReply(backend string, schema *Schema, content json.RawMessage, stop string) (json.RawMessage, error) {
	if schema == nil {
		if len(bytes.TrimSpace(content)) == 0 {
			return nil, &ErrInvalidResponse{Content: content, Err: fmt.Errorf("empty %s reply (stop %q)", backend, stop)}
		}
		return content, nil
	}
	if stop == stopMaxTokens {
		return nil, &ErrMaxTokensExceeded{Content: content}
	}
	return decodeStructured(schema, content)
}

// decodeStructured validates raw against schema and returns the JSON body
// without any Markdown fence around it. A nil schema passes raw through.
// Failures are *ErrInvalidResponse carrying the JSON pointer of the
// offending field.
func decodeStructured(schema *Schema, raw json.RawMessage) (json.RawMessage, error) {
	if schema == nil {
		return raw, nil
	}

	body := unfence(raw)
	var doc any
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, &ErrInvalidResponse{Content: raw, Err: fmt.Errorf("%s: not JSON: %w", schema.Name, err)}
	}

	compiled, err := compileSchema(schema)
	if err != nil {
		return nil, &ErrInvalidResponse{Content: raw, Err: err}
	}
	if err := compiled.Validate(doc); err != nil {
		return nil, &ErrInvalidResponse{
			Content: raw,
			Path:    failingPath(err),
			Err:     fmt.Errorf("%s does not match its schema: %w", schema.Name, err),
		}
	}
	return body, nil
}

// unfence strips a ```json ... ``` wrapper.
func unfence(raw json.RawMessage) json.RawMessage {
	body := bytes.TrimSpace(raw)
	if !bytes.HasPrefix(body, []byte("```")) {
		return body
	}
	if nl := bytes.IndexByte(body, '\n'); nl >= 0 {
		body = body[nl+1:]
	} else {
		body = body[3:]
	}
	body = bytes.TrimSuffix(bytes.TrimSpace(body), []byte("```"))
	return bytes.TrimSpace(body)
}

var pointerEscaper = strings.NewReplacer("~", "~0", "/", "~1")

// failingPath follows the first cause down to the innermost violation and
// renders its instance location as a JSON pointer. A missing required
// property is reported at the property itself.
func failingPath(err error) string {
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return ""
	}
	for len(ve.Causes) > 0 {
		ve = ve.Causes[0]
	}

	loc := append([]string(nil), ve.InstanceLocation...)
	if req, ok := ve.ErrorKind.(*kind.Required); ok && len(req.Missing) > 0 {
		loc = append(loc, req.Missing[0])
	}

	var b strings.Builder
	for _, tok := range loc {
		b.WriteByte('/')
		b.WriteString(pointerEscaper.Replace(tok))
	}
	if b.Len() == 0 {
		return "/"
	}
	return b.String()
}

func compileSchema(schema *Schema) (*jsonschema.Schema, error) {
	if cached, ok := compiledSchemas.Load(schema.Name); ok {
		return cached.(*jsonschema.Schema), nil
	}

	// The compiler wants decoded JSON values, not Go maps of arbitrary types.
	def, err := json.Marshal(schema.Definition)
	if err != nil {
		return nil, fmt.Errorf("schema %s: %w", schema.Name, err)
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(def))
	if err != nil {
		return nil, fmt.Errorf("schema %s: %w", schema.Name, err)
	}

	url := "mem://deutschpro/" + schema.Name + ".json"
	c := jsonschema.NewCompiler()
	if err := c.AddResource(url, doc); err != nil {
		return nil, fmt.Errorf("schema %s: %w", schema.Name, err)
	}
	compiled, err := c.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("schema %s: %w", schema.Name, err)
	}

	actual, _ := compiledSchemas.LoadOrStore(schema.Name, compiled)
	return actual.(*jsonschema.Schema), nil
}
