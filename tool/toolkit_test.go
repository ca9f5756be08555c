package tool_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/serena-ruan/unitycatalog-ai/function"
	"github.com/serena-ruan/unitycatalog-ai/internal/testutil"
	"github.com/serena-ruan/unitycatalog-ai/tool"
	"github.com/serena-ruan/unitycatalog-ai/uctype"
)

func addFunction(name string) *function.FunctionInfo {
	return testutil.NewFunctionBuilder("cat", "sch", name).
		Param("x", uctype.TypeInt, "int").
		Param("y", uctype.TypeInt, "int").
		Returns(uctype.TypeInt).
		Build()
}

func TestToolkit_AddFunctions(t *testing.T) {
	fake := testutil.NewFakeCatalogClient()
	fi := addFunction("add")
	fi.Comment = "Adds two numbers."
	fake.Register(fi)

	tk := tool.NewToolkit(function.New(fake))
	require.NoError(t, tk.AddFunctions(context.Background(), "cat.sch.add"))

	tools := tk.Tools()
	require.Len(t, tools, 1)
	assert.Equal(t, "cat.sch.add", tools[0].Name())
	assert.Equal(t, "Adds two numbers.", tools[0].Description())

	params := tools[0].Parameters()
	assert.Equal(t, "object", params["type"])
	assert.Equal(t, "cat__sch__add__params", params["title"])
	assert.ElementsMatch(t, []string{"x", "y"}, params["required"])

	// Re-adding the same name is a no-op.
	require.NoError(t, tk.AddFunctions(context.Background(), "cat.sch.add"))
	assert.Len(t, tk.Tools(), 1)
}

func TestToolkit_AddFunctions_BadName(t *testing.T) {
	tk := tool.NewToolkit(function.New(testutil.NewFakeCatalogClient()))
	err := tk.AddFunctions(context.Background(), "not_a_full_name")
	assert.Equal(t, function.CodeMalformedFunctionName, function.ErrorCode(err))
}

func TestToolkit_WildcardFollowsPages(t *testing.T) {
	fake := testutil.NewFakeCatalogClient()
	f1, f2, f3 := addFunction("f1"), addFunction("f2"), addFunction("f3")
	fake.Register(f1)
	fake.Pages = []function.Page[function.FunctionInfo]{
		{Items: []function.FunctionInfo{*f1, *f2}, NextPageToken: "1"},
		{Items: []function.FunctionInfo{*f3}},
	}

	tk := tool.NewToolkit(function.New(fake))
	// f1 is registered up front and must not be added twice by the wildcard.
	require.NoError(t, tk.AddFunctions(context.Background(), "cat.sch.f1"))
	require.NoError(t, tk.AddFunctions(context.Background(), "cat.sch.*"))

	tools := tk.Tools()
	require.Len(t, tools, 3)
	// Tools come back sorted by name.
	assert.Equal(t, "cat.sch.f1", tools[0].Name())
	assert.Equal(t, "cat.sch.f2", tools[1].Name())
	assert.Equal(t, "cat.sch.f3", tools[2].Name())
}

func TestToolkit_WildcardPageSizeOverride(t *testing.T) {
	t.Setenv("UC_LIST_FUNCTIONS_MAX_RESULTS", "7")

	fake := testutil.NewFakeCatalogClient()
	fake.Pages = []function.Page[function.FunctionInfo]{{}}

	tk := tool.NewToolkit(function.New(fake))
	require.NoError(t, tk.AddFunctions(context.Background(), "cat.sch.*"))

	require.Len(t, fake.ListMaxResults, 1)
	assert.Equal(t, 7, fake.ListMaxResults[0])
}

func TestToolkit_DocstringEnrichment(t *testing.T) {
	fake := testutil.NewFakeCatalogClient()
	fake.Register(addFunction("add"))

	tk := tool.NewToolkit(function.New(fake), func(o *tool.ToolkitOptions) {
		o.Docstrings = map[string]string{
			"cat.sch.add": `Adds two numbers.

Args:
    x: first operand.
    y: second operand.
`,
		}
	})
	require.NoError(t, tk.AddFunctions(context.Background(), "cat.sch.add"))

	added, ok := tk.Tool("cat.sch.add")
	require.True(t, ok)
	assert.Equal(t, "Adds two numbers.", added.Description())

	props := added.Parameters()["properties"].(map[string]any)
	x := props["x"].(map[string]any)
	assert.Equal(t, "first operand.", x["description"])
}

func TestToolkit_ExecuteEndToEnd(t *testing.T) {
	fake := testutil.NewFakeCatalogClient()
	fake.Register(addFunction("add"))
	fake.Respond(testutil.SucceededScalar("4", false))

	tk := tool.NewToolkit(function.New(fake))
	require.NoError(t, tk.AddFunctions(context.Background(), "cat.sch.add"))

	added, ok := tk.Tool("cat.sch.add")
	require.True(t, ok)

	result, err := added.Execute(context.Background(), map[string]any{"x": 1, "y": 3})
	require.NoError(t, err)
	assert.True(t, result.OK())
	v, _ := result.ScalarValue()
	assert.Equal(t, "4", v)

	// Validation failures surface as errors before any statement runs.
	_, err = added.Execute(context.Background(), map[string]any{"x": 1})
	assert.Equal(t, function.CodeMissingRequiredParameter, function.ErrorCode(err))
	assert.Len(t, fake.ExecutedStatements, 1)
}
