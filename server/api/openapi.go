package api

import (
	"fmt"
	"net/http"
	"sort"
	"strings"
)

// OpenAPI 3.0 document, generated from CircuitList

type OpenAPISpec struct {
	OpenAPI    string              `json:"openapi"`
	Info       OpenAPIInfo         `json:"info"`
	Paths      map[string]PathItem `json:"paths"`
	Components OpenAPIComponents   `json:"components"`
}

type OpenAPIInfo struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Version     string `json:"version"`
}

type PathItem struct {
	Get  *Operation `json:"get,omitempty"`
	Post *Operation `json:"post,omitempty"`
}

type Operation struct {
	Summary     string              `json:"summary"`
	Description string              `json:"description,omitempty"`
	OperationID string              `json:"operationId"`
	Tags        []string            `json:"tags,omitempty"`
	RequestBody *RequestBody        `json:"requestBody,omitempty"`
	Responses   map[string]Response `json:"responses"`
}

type RequestBody struct {
	Required bool                 `json:"required"`
	Content  map[string]MediaType `json:"content"`
}

type MediaType struct {
	Schema Schema `json:"schema"`
}

type Response struct {
	Description string               `json:"description"`
	Content     map[string]MediaType `json:"content,omitempty"`
}

type Schema struct {
	Type        string            `json:"type,omitempty"`
	Ref         string            `json:"$ref,omitempty"`
	Format      string            `json:"format,omitempty"`
	Description string            `json:"description,omitempty"`
	Pattern     string            `json:"pattern,omitempty"`
	MinLength   int               `json:"minLength,omitempty"`
	MaxLength   int               `json:"maxLength,omitempty"`
	Properties  map[string]Schema `json:"properties,omitempty"`
	Required    []string          `json:"required,omitempty"`
	Items       *Schema           `json:"items,omitempty"`
}

type OpenAPIComponents struct {
	Schemas map[string]Schema `json:"schemas"`
}

// GenerateOpenAPISpec builds the API document for every circuit of CircuitList
func GenerateOpenAPISpec(title, version string) *OpenAPISpec {
	spec := &OpenAPISpec{
		OpenAPI: "3.0.3",
		Info: OpenAPIInfo{
			Title:       title,
			Description: "Zero-knowledge proofs of base64 encoding and decoding",
			Version:     version,
		},
		Paths:      make(map[string]PathItem),
		Components: OpenAPIComponents{Schemas: commonSchemas()},
	}

	spec.Paths["/health"] = PathItem{Get: &Operation{
		Summary:     "Health check",
		OperationID: "health",
		Tags:        []string{"system"},
		Responses:   map[string]Response{"200": {Description: "Service is healthy"}},
	}}
	spec.Paths["/circuits"] = PathItem{Get: &Operation{
		Summary:     "List all circuits",
		OperationID: "listCircuits",
		Tags:        []string{"circuits"},
		Responses:   map[string]Response{"200": jsonResponse("List of circuits", "CircuitListResponse")},
	}}

	for _, name := range circuitNames() {
		info := CircuitList[name]
		id := toCamelCase(name)

		publicName := id + "PublicInput"
		privateName := id + "PrivateInput"
		spec.Components.Schemas[publicName] = schemaFromFields(info.PublicFields())
		spec.Components.Schemas[privateName] = schemaFromFields(info.PrivateFields())

		spec.Paths["/circuits/"+name] = PathItem{Get: &Operation{
			Summary:     fmt.Sprintf("Get %s information", name),
			OperationID: "get" + id,
			Tags:        []string{"circuits"},
			Responses: map[string]Response{
				"200": jsonResponse("Circuit information", "CircuitInfoResponse"),
			},
		}}

		spec.Paths["/prove/"+name] = PathItem{Post: &Operation{
			Summary:     "Generate proof",
			Description: info.Description,
			OperationID: "prove" + id,
			Tags:        []string{"proofs", name},
			RequestBody: jsonBody(Schema{
				Type:     "object",
				Required: []string{"public_input", "private_input"},
				Properties: map[string]Schema{
					"public_input":  {Ref: "#/components/schemas/" + publicName},
					"private_input": {Ref: "#/components/schemas/" + privateName},
				},
			}),
			Responses: map[string]Response{
				"200": jsonResponse("Proof generated successfully", "ProveResponse"),
				"400": jsonResponse("Invalid input", "ErrorResponse"),
				"429": {Description: "Too many proof requests"},
				"500": jsonResponse("Proof generation failed", "ErrorResponse"),
				"503": jsonResponse("Circuit not loaded", "ErrorResponse"),
			},
		}}

		spec.Paths["/verify/"+name] = PathItem{Post: &Operation{
			Summary:     "Verify proof",
			Description: info.Description,
			OperationID: "verify" + id,
			Tags:        []string{"proofs", name},
			RequestBody: jsonBody(Schema{
				Type:     "object",
				Required: []string{"public_input", "proof"},
				Properties: map[string]Schema{
					"public_input": {Ref: "#/components/schemas/" + publicName},
					"proof":        {Type: "string", Format: "byte", Description: "Base64 encoded proof"},
				},
			}),
			Responses: map[string]Response{
				"200": jsonResponse("Verification result", "VerifyResponse"),
				"400": jsonResponse("Invalid input", "ErrorResponse"),
			},
		}}
	}

	return spec
}

// HandleOpenAPI serves the generated OpenAPI document
func (s *Server) HandleOpenAPI(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, GenerateOpenAPISpec("ZK base64 proof API", "1.0.0"))
}

func schemaFromFields(fields []Field) Schema {
	schema := Schema{Type: "object", Properties: make(map[string]Schema)}
	for _, f := range fields {
		prop := Schema{Type: "string", Description: f.Description}
		switch f.Type {
		case "hex":
			prop.Pattern = "^[0-9a-fA-F]*$"
			prop.MinLength, prop.MaxLength = 2*f.Size, 2*f.Size
		case "base64url":
			prop.Pattern = "^[A-Za-z0-9_=-]*$"
			prop.MinLength, prop.MaxLength = f.Size, f.Size
		default:
			prop.Pattern = "^[A-Za-z0-9+/=]*$"
			prop.MinLength, prop.MaxLength = f.Size, f.Size
		}
		schema.Properties[f.Name] = prop
		schema.Required = append(schema.Required, f.Name)
	}
	return schema
}

func commonSchemas() map[string]Schema {
	str := Schema{Type: "string"}
	ts := Schema{Type: "string", Format: "date-time"}
	return map[string]Schema{
		"ProveResponse": {Type: "object", Properties: map[string]Schema{
			"proof_id":  {Type: "string", Format: "uuid"},
			"circuit":   str,
			"proof":     {Type: "string", Format: "byte"},
			"timestamp": ts,
		}},
		"VerifyResponse": {Type: "object", Properties: map[string]Schema{
			"valid":     {Type: "boolean"},
			"circuit":   str,
			"message":   str,
			"timestamp": ts,
		}},
		"ErrorResponse": {Type: "object", Properties: map[string]Schema{
			"error":     str,
			"code":      str,
			"timestamp": ts,
		}},
		"CircuitInfoResponse": {Type: "object", Properties: map[string]Schema{
			"name":        str,
			"version":     {Type: "integer"},
			"description": str,
			"loaded":      {Type: "boolean"},
		}},
		"CircuitListResponse": {Type: "object", Properties: map[string]Schema{
			"circuits": {Type: "array", Items: &Schema{Ref: "#/components/schemas/CircuitInfoResponse"}},
			"count":    {Type: "integer"},
		}},
	}
}

func jsonBody(schema Schema) *RequestBody {
	return &RequestBody{
		Required: true,
		Content:  map[string]MediaType{"application/json": {Schema: schema}},
	}
}

func jsonResponse(description, schemaName string) Response {
	return Response{
		Description: description,
		Content: map[string]MediaType{
			"application/json": {Schema: Schema{Ref: "#/components/schemas/" + schemaName}},
		},
	}
}

func circuitNames() []string {
	names := make([]string, 0, len(CircuitList))
	for name := range CircuitList {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// base64-decode-sha256 -> Base64DecodeSha256
func toCamelCase(s string) string {
	parts := strings.Split(s, "-")
	for i, p := range parts {
		if p != "" {
			parts[i] = strings.ToUpper(p[:1]) + p[1:]
		}
	}
	return strings.Join(parts, "")
}
