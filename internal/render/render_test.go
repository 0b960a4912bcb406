package render

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/algoviz/internal/config"
	"github.com/san-kum/algoviz/internal/generator"
	"github.com/san-kum/algoviz/internal/player"
	"github.com/san-kum/algoviz/internal/step"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func plainOptions() Options {
	opts := OptionsFrom(config.DefaultVisualizer(), "default")
	opts.Renderer = PlainRenderer()
	return opts
}

func twoSumStore(t *testing.T) *player.Store {
	t.Helper()
	input, seq, err := generator.TwoSumAlgorithm().Run(step.Ints(2, 7, 11, 15), nil)
	require.NoError(t, err)
	s := player.New()
	s.Load(input, seq)
	return s
}

func TestFrame(t *testing.T) {
	s := twoSumStore(t)
	s.Next()

	out := Frame(s, plainOptions())

	for _, want := range []string{"2", "7", "11", "15", "Step 2/", "Check index 0", "complement := target - nums[i]", "target = 9"} {
		assert.Contains(t, out, want)
	}
	assert.NotContains(t, out, "\x1b[")

	lines := strings.Split(out, "\n")
	assert.Equal(t, "i", strings.TrimSpace(lines[0][:5]))
}

func TestFrame_EmptyStore(t *testing.T) {
	out := Frame(player.New(), plainOptions())
	assert.Contains(t, out, "(empty)")
	assert.Contains(t, out, "No steps")
}

func TestFrame_HideValues(t *testing.T) {
	s := player.New()
	s.Load(step.Ints(12345), step.Sequence{step.Narrate("x")})
	opts := plainOptions()
	opts.ShowValues = false

	assert.NotContains(t, Cells(s, opts), "12345")
}

func TestCells_Wraps(t *testing.T) {
	s := player.New()
	s.Load(step.Ints(1, 2, 3, 4, 5, 6), step.Sequence{step.Narrate("x")})
	opts := plainOptions()
	opts.ShowIndices = false

	one := Cells(s, opts)
	opts.Width = 12
	wrapped := Cells(s, opts)

	assert.Greater(t, strings.Count(wrapped, "\n"), strings.Count(one, "\n"))
}

func TestTheme_WithColors(t *testing.T) {
	th := GetTheme("default").WithColors(map[string]string{"found": "#123456", "bogus": "#000000", "sorted": "red"})

	assert.Equal(t, lipgloss.Color("#123456"), th.Color(step.RoleFound))
	assert.Equal(t, lipgloss.Color("#fb7185"), th.Color(step.RoleSorted))
	assert.Equal(t, lipgloss.Color("#4ade80"), ThemeDefault.Color(step.RoleFound))
	assert.Equal(t, ThemeDefault.Name, GetTheme("missing").Name)
}

func TestSVG(t *testing.T) {
	s := twoSumStore(t)
	s.Goto(s.Len() - 1)
	opts := plainOptions()
	opts.Title = "Two <Sum>"

	out := SVG(s, opts)

	assert.True(t, strings.HasPrefix(out, "<?xml"))
	assert.Contains(t, out, "Two &lt;Sum&gt;")
	assert.Equal(t, 4, strings.Count(out, `rx="6"`))
	assert.Contains(t, out, `stroke="#4ade80"`)
	assert.True(t, strings.HasSuffix(out, "</svg>\n"))
}

func TestSeriesAndPlot(t *testing.T) {
	seq := step.Sequence{
		step.Narrate("a"),
		step.Narrate("b").WithVars("swaps", 1),
		step.Narrate("c"),
		step.Narrate("d").WithVars("swaps", 2, "note", "x"),
	}

	assert.Equal(t, []float64{1, 1, 2}, Series(seq, "swaps"))
	assert.Equal(t, []string{"swaps"}, NumericVars(seq))

	out, err := Plot(seq, "swaps", 20, 4)
	require.NoError(t, err)
	assert.Contains(t, out, "swaps")

	_, err = Plot(seq, "note", 20, 4)
	assert.ErrorIs(t, err, ErrNoSeries)
}

func TestMarkdown(t *testing.T) {
	seq := generator.TwoSum([]int{3, 3}, 6)
	md := Markdown("Two Sum", step.Ints(3, 3), seq)

	assert.True(t, strings.HasPrefix(md, "# Two Sum\n"))
	assert.Contains(t, md, "Input: `[3, 3]`")
	assert.Contains(t, md, "**found**")
	assert.Contains(t, md, "`result = [0, 1]`")

	out, err := RenderMarkdown(md, "notty", 80)
	require.NoError(t, err)
	assert.Contains(t, out, "Two Sum")
}

func TestStatus(t *testing.T) {
	s := twoSumStore(t)
	s.SetSpeed(2)
	assert.Equal(t, "paused  2x  step 1/4", Status(s))
}
