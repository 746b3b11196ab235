package figma

import "encoding/json"

// Wire shapes for the single-shot JSON-RPC call to the local design
// query service.

type rpcRequest struct {
	JSONRPC string    `json:"jsonrpc"`
	Method  string    `json:"method"`
	Params  rpcParams `json:"params"`
	ID      int64     `json:"id"`
}

type rpcParams struct {
	Name      string         `json:"name"`
	Arguments map[string]any `json:"arguments"`
}

type rpcResponse struct {
	Result json.RawMessage `json:"result"`
	Error  *rpcError       `json:"error"`
}

type rpcError struct {
	Message string `json:"message"`
}

// DesignContext is the tool-specific payload returned for a
// get_design_context call: the selected node, its component property
// definitions, and the token/typography state captured from the design.
type DesignContext struct {
	Node       NodeInfo             `json:"node"`
	Properties []PropertyDefinition `json:"componentProperties"`
	Tokens     map[string]any       `json:"tokens"`
	Typography map[string]any       `json:"typography"`
}

// NodeInfo identifies the design-tool node the context was read from.
type NodeInfo struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// PropertyDefinition is one component property as the design tool
// declares it.
type PropertyDefinition struct {
	Name           string   `json:"name"`
	Type           string   `json:"type"`
	DefaultValue   any      `json:"defaultValue"`
	VariantOptions []string `json:"variantOptions,omitempty"`
	Required       bool     `json:"required"`
}

// Design-tool property types the extractor understands.
const (
	typeVariant = "VARIANT"
	typeBoolean = "BOOLEAN"
	typeText    = "TEXT"
)
