package subtitles

import (
	"fmt"
	"strings"
	"time"

	"github.com/forPelevin/fillercut/internal/domain/fillers"
	"github.com/forPelevin/fillercut/internal/domain/intervals"
	"github.com/forPelevin/fillercut/internal/types"
)

// RenderTrimmedASS renders karaoke subtitles for a trimmed file. Words that
// survive the cut are shifted onto the output timeline, where interval i
// starts at the summed length of intervals 0..i-1. Fillers are left out.
func RenderTrimmedASS(tr types.Transcript, ivs []types.Interval, c intervals.Classifier) string {
	words := collectWords(tr, ivs, c)
	if len(words) == 0 {
		return renderASSKaraoke(nil)
	}
	return renderASSKaraoke(packWords(words))
}

type wword struct {
	Start time.Duration
	End   time.Duration
	Text  string
}

type line struct {
	Start time.Duration
	End   time.Duration
	Words []wword
}

func collectWords(tr types.Transcript, ivs []types.Interval, c intervals.Classifier) []wword {
	var out []wword
	offset := 0.0
	k := 0
	for _, w := range tr.Words() {
		text := strings.TrimSpace(w.Word)
		norm := fillers.Normalize(text)
		if norm == "" || w.End <= w.Start || c.IsFiller(norm) {
			continue
		}
		for k < len(ivs) && w.Start >= ivs[k].End {
			offset += ivs[k].Duration()
			k++
		}
		if k == len(ivs) {
			break
		}
		iv := ivs[k]
		if w.Start < iv.Start {
			continue
		}
		ws := max(w.Start, iv.Start)
		we := min(w.End, iv.End)
		out = append(out, wword{
			Start: dur(offset + ws - iv.Start),
			End:   dur(offset + we - iv.Start),
			Text:  sanitizeASS(text),
		})
	}
	return out
}

func packWords(words []wword) []line {
	var out []line
	cur := line{Start: words[0].Start}
	// Hard budgets keep lines readable regardless of transcript grouping.
	charBudget := 42
	wordBudget := 9
	curLen := 0
	for i, w := range words {
		wl := len([]rune(w.Text))
		nextLen := curLen
		if curLen > 0 {
			nextLen++
		}
		nextLen += wl
		if len(cur.Words) >= wordBudget || nextLen > charBudget {
			cur.End = cur.Words[len(cur.Words)-1].End
			out = append(out, cur)
			cur = line{Start: w.Start}
			curLen = 0
		}
		cur.Words = append(cur.Words, w)
		if curLen > 0 {
			curLen++
		}
		curLen += wl
		if i == len(words)-1 {
			cur.End = w.End
			out = append(out, cur)
		}
	}
	return out
}

func renderASSKaraoke(lines []line) string {
	var b strings.Builder
	b.WriteString(assHeader())
	b.WriteString("\n[Events]\n")
	b.WriteString("Format: Layer, Start, End, Style, Name, MarginL, MarginR, MarginV, Effect, Text\n")
	for _, ln := range lines {
		b.WriteString("Dialogue: 0,")
		b.WriteString(assTime(ln.Start))
		b.WriteString(",")
		b.WriteString(assTime(ln.End))
		b.WriteString(",Default,,0,0,0,,")
		for _, w := range ln.Words {
			durCS := int((w.End - w.Start) / (10 * time.Millisecond))
			if durCS < 1 {
				durCS = 1
			}
			b.WriteString(fmt.Sprintf("{\\k%d}%s ", durCS, w.Text))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func assHeader() string {
	return strings.TrimSpace(`
[Script Info]
ScriptType: v4.00+
PlayResX: 1920
PlayResY: 1080
ScaledBorderAndShadow: yes

[V4+ Styles]
Format: Name, Fontname, Fontsize, PrimaryColour, SecondaryColour, OutlineColour, BackColour, Bold, Italic, Underline, StrikeOut, ScaleX, ScaleY, Spacing, Angle, BorderStyle, Outline, Shadow, Alignment, MarginL, MarginR, MarginV, Encoding
Style: Default, Inter, 64, &H00FFFFFF, &H00FFD200, &H00000000, &H64000000, 1,0,0,0,100,100,0,0,1,4,2,2, 80,80,60,1
`)
}

func assTime(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	hs := int(d / time.Hour)
	d -= time.Duration(hs) * time.Hour
	ms := int(d / time.Minute)
	d -= time.Duration(ms) * time.Minute
	s := int(d / time.Second)
	d -= time.Duration(s) * time.Second
	cs := int(d / (10 * time.Millisecond))
	return fmt.Sprintf("%d:%02d:%02d.%02d", hs, ms, s, cs)
}

func sanitizeASS(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "{", "(")
	s = strings.ReplaceAll(s, "}", ")")
	return strings.TrimSpace(s)
}

func dur(sec float64) time.Duration { return time.Duration(sec * float64(time.Second)) }
