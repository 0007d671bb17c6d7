// internal/llm/prompt.go
package llm

import (
	"fmt"
	"strings"

	"github.com/asklytics/asklytics-backend/internal/schema"
)

// ChatSystemPrompt carries the domain rules for the chat-style backends.
const ChatSystemPrompt = `You are an expert MySQL database assistant. Your task is to convert natural language questions into accurate, executable SQL queries.

CRITICAL RULES:
1. Analyze the user's question carefully to identify which table(s) and columns are relevant
2. Use exact column names and table names from the provided schema
3. For questions about 'payment details' or 'check number', use the 'payments' table
4. For questions about customers, use the 'customers' table
5. For questions about orders, use the 'orders' table
6. For questions about products, use the 'products' table
7. Return ONLY the SQL query - no explanations, comments, backticks, or markdown
8. Use appropriate WHERE clauses to filter based on the user's specific criteria
9. Join tables when necessary to get complete information
10. Do NOT return generic queries - always address the specific question asked`

// RenderSchemaLines renders a snapshot one table per line:
//
//	Table 'customers': id (int), name (varchar(255)), ...
//
// Order follows the snapshot, which follows the database.
func RenderSchemaLines(snapshot schema.Snapshot) string {
	lines := make([]string, 0, len(snapshot))
	for _, table := range snapshot {
		cols := make([]string, 0, len(table.Columns))
		for _, col := range table.Columns {
			cols = append(cols, fmt.Sprintf("%s (%s)", col.Name, col.Type))
		}
		lines = append(lines, fmt.Sprintf("Table '%s': %s", table.Name, strings.Join(cols, ", ")))
	}
	return strings.Join(lines, "\n")
}

// ChatUserPrompt builds the user turn for the chat strategy.
func ChatUserPrompt(snapshot schema.Snapshot, question string) string {
	return fmt.Sprintf(
		"Database Schema:\n%s\n\nUser Question: %s\n\n"+
			"Instructions: Generate a MySQL query that directly answers this specific question. "+
			"Use the exact table and column names from the schema. Return only the SQL query.",
		RenderSchemaLines(snapshot), question)
}

// Seq2SeqPrompt builds the single tagged string a table-aware
// translation model expects:
//
//	translate English to SQL: {question} | CREATE TABLE a ( ... ) | CREATE TABLE b ( ... )
func Seq2SeqPrompt(snapshot schema.Snapshot, question string) string {
	fragments := make([]string, 0, len(snapshot))
	for _, table := range snapshot {
		cols := make([]string, 0, len(table.Columns))
		for _, col := range table.Columns {
			cols = append(cols, fmt.Sprintf("%s %s", col.Name, col.Type))
		}
		fragments = append(fragments, fmt.Sprintf("CREATE TABLE %s ( %s )", table.Name, strings.Join(cols, ", ")))
	}
	return fmt.Sprintf("translate English to SQL: %s | %s", question, strings.Join(fragments, " | "))
}

// TableExtractionPrompt is phase one of the two-phase strategy: the model
// names the tables the question touches, nothing else.
func TableExtractionPrompt(question string) string {
	return fmt.Sprintf(
		"Identify the database table names this question refers to.\n\n"+
			"Question: %s\n\n"+
			"Return ONLY a comma-separated list of table names in lowercase - "+
			"no explanations, no markdown, no SQL.", question)
}

// SQLFromSchemaPrompt is phase two: generate SQL given only the schemas of
// the extracted tables.
func SQLFromSchemaPrompt(snapshot schema.Snapshot, question string) string {
	return fmt.Sprintf(
		"%s\n\nDatabase Schema:\n%s\n\nUser Question: %s\n\nReturn only the SQL query.",
		ChatSystemPrompt, RenderSchemaLines(snapshot), question)
}

// ParseTableList splits phase-one output into table names, tolerating
// stray whitespace, quoting, and fence noise around the list.
func ParseTableList(raw string) []string {
	cleaned := strings.NewReplacer("```", "", "`", "", "'", "", "\"", "", "\n", ",").Replace(raw)
	parts := strings.Split(cleaned, ",")
	tables := make([]string, 0, len(parts))
	seen := make(map[string]struct{})
	for _, p := range parts {
		name := strings.ToLower(strings.TrimSpace(p))
		if name == "" {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		tables = append(tables, name)
	}
	return tables
}
