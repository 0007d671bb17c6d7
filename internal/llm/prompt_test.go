// internal/llm/prompt_test.go
package llm

import (
	"reflect"
	"strings"
	"testing"

	"github.com/asklytics/asklytics-backend/internal/schema"
)

func sampleSnapshot() schema.Snapshot {
	return schema.Snapshot{
		{
			Name: "customers",
			Columns: []schema.ColumnInfo{
				{Name: "id", Type: "int", Nullable: "NO", Key: "PRI"},
				{Name: "name", Type: "varchar(255)", Nullable: "YES"},
			},
		},
		{
			Name: "orders",
			Columns: []schema.ColumnInfo{
				{Name: "id", Type: "int", Nullable: "NO", Key: "PRI"},
				{Name: "customer_id", Type: "int", Nullable: "NO", Key: "MUL"},
				{Name: "total", Type: "decimal(10,2)", Nullable: "YES"},
			},
		},
	}
}

func TestRenderSchemaLines(t *testing.T) {
	got := RenderSchemaLines(sampleSnapshot())
	want := "Table 'customers': id (int), name (varchar(255))\n" +
		"Table 'orders': id (int), customer_id (int), total (decimal(10,2))"
	if got != want {
		t.Errorf("RenderSchemaLines() =\n%s\nwant:\n%s", got, want)
	}
}

func TestChatUserPromptContainsSchemaAndQuestion(t *testing.T) {
	question := "how many orders does each customer have?"
	prompt := ChatUserPrompt(sampleSnapshot(), question)

	if !strings.Contains(prompt, question) {
		t.Error("prompt is missing the literal question text")
	}
	for _, fragment := range []string{"Table 'customers'", "Table 'orders'", "customer_id (int)"} {
		if !strings.Contains(prompt, fragment) {
			t.Errorf("prompt is missing %q", fragment)
		}
	}
	// Schema order must follow snapshot order.
	if strings.Index(prompt, "Table 'customers'") > strings.Index(prompt, "Table 'orders'") {
		t.Error("tables rendered out of schema order")
	}
}

func TestSeq2SeqPrompt(t *testing.T) {
	got := Seq2SeqPrompt(sampleSnapshot(), "list all customers")
	want := "translate English to SQL: list all customers | " +
		"CREATE TABLE customers ( id int, name varchar(255) ) | " +
		"CREATE TABLE orders ( id int, customer_id int, total decimal(10,2) )"
	if got != want {
		t.Errorf("Seq2SeqPrompt() =\n%s\nwant:\n%s", got, want)
	}
}

func TestParseTableList(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		want  []string
	}{
		{"plain list", "customers, orders", []string{"customers", "orders"}},
		{"newline separated", "customers\norders", []string{"customers", "orders"}},
		{"noise tolerated", "```\n'Customers', \"orders\" \n```", []string{"customers", "orders"}},
		{"duplicates removed", "orders, orders, customers", []string{"orders", "customers"}},
		{"empty", "", nil},
		{"only noise", "```\n\n```", nil},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := ParseTableList(tc.input)
			if len(got) == 0 && len(tc.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("ParseTableList(%q) = %v; want %v", tc.input, got, tc.want)
			}
		})
	}
}

func TestTableExtractionPromptContainsQuestion(t *testing.T) {
	prompt := TableExtractionPrompt("show me payment details for check 115")
	if !strings.Contains(prompt, "show me payment details for check 115") {
		t.Error("extraction prompt is missing the question")
	}
	if !strings.Contains(prompt, "comma-separated") {
		t.Error("extraction prompt does not ask for a comma-separated list")
	}
}
