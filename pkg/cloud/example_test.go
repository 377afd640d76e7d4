package cloud_test

import (
	"context"
	"fmt"

	"github.com/matzehuels/tagcloud/pkg/cloud"
	"github.com/matzehuels/tagcloud/pkg/glyph/glyphtest"
)

func ExampleLayout() {
	records := []cloud.Record{
		{Text: "go", Weight: 10},
		{Text: "cloud", Weight: 4},
		{Text: "", Weight: 1},
	}
	p := cloud.DefaultParams()
	p.Width, p.Height = 400, 300
	p.Angles = []float64{0}

	res, err := cloud.Layout(context.Background(), records, p, glyphtest.New())
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	res.Emit(cloud.SinkFunc(func(text string, d cloud.Draw) {
		fmt.Printf("%s size=%v\n", text, d.FontSize)
	}))
	for _, s := range res.Skipped {
		fmt.Printf("skipped row %d: %v\n", s.RowIndex, s.Err)
	}
	// Output:
	// go size=100
	// cloud size=37
	// skipped row 2: text renders no ink
}

func ExampleAngleRange() {
	fmt.Println(cloud.AngleRange{Count: 3, From: -60, To: 60}.Angles())
	// Output: [-60 0 60]
}
