package ingest_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akave-ai/ledgerdesk/internal/ingest"
	"github.com/akave-ai/ledgerdesk/internal/model"
	"github.com/akave-ai/ledgerdesk/internal/validation"
)

const csvHeader = "customer_id,customer_email,customer_name,subject,description,category,priority,status,tags,metadata_source,metadata_device_type\n"

func TestCSVParser_TagsAndMetadata(t *testing.T) {
	content := csvHeader +
		"CUST001,jane@example.com,Jane Doe,Login help,I cannot access my account at all,account_access,high,new,test|tag,web_form,desktop\n"

	res := (&ingest.CSVParser{}).Parse([]byte(content))
	require.Empty(t, res.Failures)
	require.Len(t, res.Successes, 1)

	got := res.Successes[0]
	assert.Equal(t, 2, got.Line)
	assert.Equal(t, []string{"test", "tag"}, got.Input.Tags)
	require.NotNil(t, got.Input.Metadata)
	assert.Equal(t, model.SourceWebForm, got.Input.Metadata.Source)
	assert.Equal(t, model.DeviceDesktop, got.Input.Metadata.DeviceType)
	assert.Nil(t, got.Input.AssignedTo)
}

func TestCSVParser_StructuralErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		reason  string
	}{
		{name: "empty", content: "", reason: "file is empty"},
		{name: "whitespace only", content: "  \n\n ", reason: "file is empty"},
		{name: "header only", content: csvHeader, reason: "no valid records found"},
		{name: "missing columns", content: "customer_id,customer_email\nCUST001,test@example.com\n", reason: "missing required columns: customer_name, subject, description, category, priority, status"},
		{name: "uneven columns", content: "a,b,c\n1,2\n", reason: "Invalid CSV format"},
		{name: "bad quoting", content: "a,b\n\"1,2\n", reason: "Invalid CSV format"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			res := (&ingest.CSVParser{}).Parse([]byte(tc.content))
			assert.Empty(t, res.Successes)
			require.Len(t, res.Failures, 1)
			assert.Equal(t, 0, res.Failures[0].Line)
			assert.Nil(t, res.Failures[0].Record)
			assert.Contains(t, res.Failures[0].Reason, tc.reason)
		})
	}
}

func TestCSVParser_RowErrorsDoNotBlockSiblings(t *testing.T) {
	content := "customer_id,customer_email,customer_name,subject,description,category,priority,status,source\n" +
		"CUST001,,John Doe,Test Subject,Test description here,technical_issue,medium,new,web_form\n" +
		"CUST002,bad-email,John Doe,Test Subject,Test description here,technical_issue,medium,new,web_form\n" +
		"CUST003,ok@example.com,John Doe,Test Subject,Test description here,technical_issue,medium,new,web_form\n" +
		"\n" +
		"CUST004,ok@example.com,John Doe,Test Subject,Test description here,technical_issue,medium,now,web_form\n"

	res := (&ingest.CSVParser{}).Parse([]byte(content))
	require.Len(t, res.Successes, 1)
	require.Len(t, res.Failures, 3)
	assert.Equal(t, 4, res.Successes[0].Line)
	assert.Equal(t, model.SourceWebForm, res.Successes[0].Input.Metadata.Source)

	assert.Equal(t, 2, res.Failures[0].Line)
	assert.Equal(t, "Invalid CSV format at line 2: missing required field 'customer_email'", res.Failures[0].Reason)
	assert.Equal(t, 3, res.Failures[1].Line)
	assert.Contains(t, res.Failures[1].Reason, "customer_email")
	assert.Equal(t, 5, res.Failures[2].Line)
	assert.Contains(t, res.Failures[2].Reason, "status")

	raw, ok := res.Failures[1].Record.(map[string]string)
	require.True(t, ok)
	assert.Equal(t, "CUST002", raw["customer_id"])
}

func TestCSVParser_MetadataOmittedWithoutAliases(t *testing.T) {
	content := "customer_id,customer_email,customer_name,subject,description,category,priority,status,assigned_to\n" +
		"CUST001,jane@example.com,Jane Doe,Printer jam,The office printer keeps jamming,other,low,in_progress,agent-7\n"

	res := (&ingest.CSVParser{}).Parse([]byte(content))
	require.Len(t, res.Successes, 1)
	in := res.Successes[0].Input
	assert.Nil(t, in.Metadata)
	assert.Equal(t, []string{}, in.Tags)
	require.NotNil(t, in.AssignedTo)
	assert.Equal(t, "agent-7", *in.AssignedTo)
}

func TestCSVParser_QuotedCellsAndTrim(t *testing.T) {
	content := csvHeader +
		`CUST001, jane@example.com ,"Doe, Jane","Refund, please","I was charged twice, please refund",billing_question,high,new," a | b ",email,mobile` + "\n"

	res := (&ingest.CSVParser{}).Parse([]byte(content))
	require.Len(t, res.Successes, 1)
	in := res.Successes[0].Input
	assert.Equal(t, "Doe, Jane", in.CustomerName)
	assert.Equal(t, "jane@example.com", in.CustomerEmail)
	assert.Equal(t, []string{"a", "b"}, in.Tags)
}

func TestCSVParser_SuccessesPassValidator(t *testing.T) {
	content := csvHeader +
		"CUST001,jane@example.com,Jane Doe,Login help,I cannot access my account at all,account_access,high,new,test|tag,web_form,desktop\n" +
		"CUST002,john@example.com,John Roe,Invoice,Where is my invoice for March?,billing_question,low,closed,,chat,\n"

	res := (&ingest.CSVParser{}).Parse([]byte(content))
	require.Len(t, res.Successes, 2)
	for _, s := range res.Successes {
		in := s.Input
		assert.NoError(t, validation.ValidateTicket(&in))
	}
}
