// Package mcpserver exposes the document index over the Model Context
// Protocol, so an agent can open a document once and then navigate it by
// structure: outline first, then targeted node reads.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"docindex/internal/index"
	"docindex/internal/parser"
	"docindex/internal/store"
)

// RegisterTools adds all document-index tools to the MCP server.
func RegisterTools(s *server.MCPServer, docs *store.Store) {
	s.AddTool(openDocumentTool(), openDocumentHandler(docs))
	s.AddTool(listDocumentsTool(), listDocumentsHandler(docs))
	s.AddTool(outlineTool(), outlineHandler(docs))
	s.AddTool(getNodeTool(), getNodeHandler(docs))
	s.AddTool(getNodeWithChildrenTool(), getNodeWithChildrenHandler(docs))
	s.AddTool(getChildrenTool(), getChildrenHandler(docs))
	s.AddTool(nodeIDsTool(), nodeIDsHandler(docs))
	s.AddTool(closeDocumentTool(), closeDocumentHandler(docs))
}

// --- open_document ---

func openDocumentTool() mcp.Tool {
	return mcp.NewTool("open_document",
		mcp.WithDescription("Index a document for structural navigation. Provide either a file path (markdown, txt, html, pdf, docx, csv) or inline heading-structured text. Returns the document outline."),
		mcp.WithString("doc_id",
			mcp.Required(),
			mcp.Description("Identifier to register the document under"),
		),
		mcp.WithString("path",
			mcp.Description("Path to the document file"),
		),
		mcp.WithString("text",
			mcp.Description("Inline document text with # heading markers (used when no path is given)"),
		),
	)
}

func openDocumentHandler(docs *store.Store) server.ToolHandlerFunc {
	return func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		docID := req.GetString("doc_id", "")
		if docID == "" {
			return toolError(fmt.Errorf("doc_id is required"))
		}
		path := req.GetString("path", "")
		text := req.GetString("text", "")

		var (
			ix  *index.Index
			err error
		)
		switch {
		case path != "":
			ix, err = parseFile(docID, path)
		case text != "":
			ix, err = index.New(docID, text)
		default:
			return toolError(fmt.Errorf("either path or text is required"))
		}
		if err != nil {
			return toolError(err)
		}

		docs.Put(ix)

		if ix.Empty() {
			return mcp.NewToolResultText(fmt.Sprintf(
				"Indexed %q: document has no headings, so it has no addressable sections.", docID)), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf(
			"Indexed %q (%d sections). Outline:\n%s", docID, ix.Len(), ix.Outline())), nil
	}
}

func parseFile(docID, path string) (*index.Index, error) {
	p, err := parser.ForFile(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open document: %w", err)
	}
	defer f.Close()
	return p.Parse(f, docID, path)
}

// --- list_documents ---

func listDocumentsTool() mcp.Tool {
	return mcp.NewTool("list_documents",
		mcp.WithDescription("List the documents currently indexed, with titles and section counts."),
	)
}

func listDocumentsHandler(docs *store.Store) server.ToolHandlerFunc {
	return func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		infos := docs.List()
		if len(infos) == 0 {
			return mcp.NewToolResultText("No documents indexed. Use open_document first."), nil
		}
		var sb strings.Builder
		for _, info := range infos {
			fmt.Fprintf(&sb, "%s  %q  %d sections\n", info.DocID, info.Title, info.NodeCount)
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- outline ---

func outlineTool() mcp.Tool {
	return mcp.NewTool("outline",
		mcp.WithDescription("Show the section outline of an indexed document: one line per section with its identifier and title, indented by nesting."),
		mcp.WithString("doc_id",
			mcp.Required(),
			mcp.Description("Document identifier"),
		),
	)
}

func outlineHandler(docs *store.Store) server.ToolHandlerFunc {
	return func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		ix, errResult := lookup(docs, req)
		if errResult != nil {
			return errResult, nil
		}
		if ix.Empty() {
			return mcp.NewToolResultText("Document has no sections."), nil
		}
		return mcp.NewToolResultText(ix.Outline()), nil
	}
}

// --- get_node ---

func getNodeTool() mcp.Tool {
	return mcp.NewTool("get_node",
		mcp.WithDescription("Read one section by its identifier (e.g. 2.3.1). Returns title, depth, breadcrumb, and the section's own body text."),
		mcp.WithString("doc_id",
			mcp.Required(),
			mcp.Description("Document identifier"),
		),
		mcp.WithString("node_id",
			mcp.Required(),
			mcp.Description("Section identifier from the outline"),
		),
	)
}

func getNodeHandler(docs *store.Store) server.ToolHandlerFunc {
	return func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		ix, errResult := lookup(docs, req)
		if errResult != nil {
			return errResult, nil
		}
		node, err := ix.GetNode(req.GetString("node_id", ""))
		if err != nil {
			return toolError(err)
		}
		return nodeResult(node)
	}
}

// --- get_node_with_children ---

func getNodeWithChildrenTool() mcp.Tool {
	return mcp.NewTool("get_node_with_children",
		mcp.WithDescription("Read a section together with all of its descendants: the text field holds the merged body text of the whole subtree in document order."),
		mcp.WithString("doc_id",
			mcp.Required(),
			mcp.Description("Document identifier"),
		),
		mcp.WithString("node_id",
			mcp.Required(),
			mcp.Description("Section identifier from the outline"),
		),
	)
}

func getNodeWithChildrenHandler(docs *store.Store) server.ToolHandlerFunc {
	return func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		ix, errResult := lookup(docs, req)
		if errResult != nil {
			return errResult, nil
		}
		node, err := ix.GetNodeWithChildren(req.GetString("node_id", ""))
		if err != nil {
			return toolError(err)
		}
		return nodeResult(node)
	}
}

// --- get_children ---

func getChildrenTool() mcp.Tool {
	return mcp.NewTool("get_children",
		mcp.WithDescription("List the direct children of a section as (identifier, title) pairs."),
		mcp.WithString("doc_id",
			mcp.Required(),
			mcp.Description("Document identifier"),
		),
		mcp.WithString("node_id",
			mcp.Required(),
			mcp.Description("Section identifier from the outline"),
		),
	)
}

func getChildrenHandler(docs *store.Store) server.ToolHandlerFunc {
	return func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		ix, errResult := lookup(docs, req)
		if errResult != nil {
			return errResult, nil
		}
		children, err := ix.GetChildren(req.GetString("node_id", ""))
		if err != nil {
			return toolError(err)
		}
		if len(children) == 0 {
			return mcp.NewToolResultText("Section has no children."), nil
		}
		var sb strings.Builder
		for _, c := range children {
			fmt.Fprintf(&sb, "[%s] %s\n", c.ID, c.Title)
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- node_ids ---

func nodeIDsTool() mcp.Tool {
	return mcp.NewTool("node_ids",
		mcp.WithDescription("List every section identifier of a document in pre-order."),
		mcp.WithString("doc_id",
			mcp.Required(),
			mcp.Description("Document identifier"),
		),
	)
}

func nodeIDsHandler(docs *store.Store) server.ToolHandlerFunc {
	return func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		ix, errResult := lookup(docs, req)
		if errResult != nil {
			return errResult, nil
		}
		return mcp.NewToolResultText(strings.Join(ix.NodeIDs(), "\n")), nil
	}
}

// --- close_document ---

func closeDocumentTool() mcp.Tool {
	return mcp.NewTool("close_document",
		mcp.WithDescription("Drop an indexed document when it is no longer needed."),
		mcp.WithString("doc_id",
			mcp.Required(),
			mcp.Description("Document identifier"),
		),
	)
}

func closeDocumentHandler(docs *store.Store) server.ToolHandlerFunc {
	return func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		docID := req.GetString("doc_id", "")
		if !docs.Delete(docID) {
			return toolError(fmt.Errorf("document not found: %s", docID))
		}
		return mcp.NewToolResultText(fmt.Sprintf("Closed %q.", docID)), nil
	}
}

// --- helpers ---

func lookup(docs *store.Store, req mcp.CallToolRequest) (*index.Index, *mcp.CallToolResult) {
	docID := req.GetString("doc_id", "")
	ix := docs.Get(docID)
	if ix == nil {
		res, _ := toolError(fmt.Errorf("document not found: %s (use open_document first)", docID))
		return nil, res
	}
	return ix, nil
}

func nodeResult(node index.Node) (*mcp.CallToolResult, error) {
	out, err := json.MarshalIndent(node, "", "  ")
	if err != nil {
		return toolError(err)
	}
	return mcp.NewToolResultText(string(out)), nil
}

func toolError(err error) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(err.Error()), nil
}
