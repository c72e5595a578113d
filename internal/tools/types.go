// In file: internal/tools/types.go

// Package tools defines the provider-agnostic description of the operations
// this server exposes, and the table that binds operation names to their
// executors. Transports (MCP, HTTP) translate these types into their own
// wire format.
package tools

// ToolTypeFunction is the standard type for function-based tools.
const ToolTypeFunction = "function"

// Tool defines the schema for a callable operation as announced to a host.
type Tool struct {
	// Type specifies the type of tool, which is always "function".
	Type string `json:"type"`
	// Function holds the detailed definition of the function.
	Function Function `json:"function"`
}

// Function defines the name, description, and parameters of a callable tool.
type Function struct {
	// Name is the name hosts use to invoke the tool (e.g., "get_alerts").
	Name string `json:"name"`
	// Description is what the host shows to decide when to call the tool.
	Description string `json:"description"`
	// Parameters defines the arguments the function accepts, as a JSON Schema.
	Parameters JSONSchema `json:"parameters"`
}

// JSONSchema is the subset of JSON Schema needed to describe tool arguments.
type JSONSchema struct {
	// Type defines the data type for a schema node (e.g., "object", "string").
	Type string `json:"type"`
	// Description explains what a specific parameter is for.
	Description string `json:"description,omitempty"`
	// Properties describes the parameters of an object.
	Properties map[string]*JSONSchema `json:"properties,omitempty"`
	// Required is a list of parameter names that are mandatory.
	Required []string `json:"required,omitempty"`
}

// NewFunctionTool is a helper function that simplifies the creation of a new Tool.
func NewFunctionTool(name, description string, parameters JSONSchema) Tool {
	return Tool{
		Type: ToolTypeFunction,
		Function: Function{
			Name:        name,
			Description: description,
			Parameters:  parameters,
		},
	}
}

// ResourceTemplate describes a family of readable resources addressed by a
// URI template such as "echo://{message}".
type ResourceTemplate struct {
	URITemplate string `json:"uri_template"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	MIMEType    string `json:"mime_type,omitempty"`
}

// ResourceContent is the body returned for a resource read.
type ResourceContent struct {
	URI      string `json:"uri"`
	MIMEType string `json:"mime_type"`
	Text     string `json:"text"`
}
