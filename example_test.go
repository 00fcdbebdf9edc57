package osufile_test

import (
	"fmt"

	osufile "github.com/osufile/go-osufile"
)

func ExampleParse() {
	src := `osu file format v14

[Metadata]
Title:Sendan Life
Creator:Narcissu

[HitObjects]
221,350,9780,1,0,0:0:0:0:
`
	b, err := osufile.Parse(src)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(*b.Metadata.Title)
	fmt.Println(b.HitObjects.Objects[0].Time)
	// Output:
	// Sendan Life
	// 9780
}

func ExampleBeatmap_Render() {
	b := osufile.Default(14)
	title := "Night Sky"
	b.Metadata.Title = &title
	fmt.Print(b.Render())
	// Output:
	// osu file format v14
	//
	// [General]
	// AudioLeadIn: 0
	// PreviewTime: -1
	// Countdown: 1
	// SampleSet: Normal
	// StackLeniency: 0.7
	// Mode: 0
	// StoryFireInFront: 1
	//
	// [Editor]
	//
	// [Metadata]
	// Title:Night Sky
	//
	// [Difficulty]
	//
	// [Events]
	//
	// [TimingPoints]
	//
	// [Colours]
	//
	// [HitObjects]
}

func ExampleShowErrorLine() {
	src := "osu file format v14\n[General]\nMode: 9"
	_, err := osufile.Parse(src)
	fmt.Println(osufile.ShowErrorLine(src, err))
	// Output:
	// Line 3, invalid Mode: unknown game mode 9
	// Mode: 9
	// ^
}

func ExampleBeatmap_AppendOsb() {
	b := osufile.Default(14)
	osb := "[Variables]\n$img=sb/cloud.png\n\n[Events]\nSprite,Background,Centre,\"$img\",320,240\n"
	if err := b.AppendOsb(osb); err != nil {
		fmt.Println(err)
		return
	}
	out, _ := b.RenderOsb()
	fmt.Print(out)
	// Output:
	// [Variables]
	// $img=sb/cloud.png
	//
	// [Events]
	// Sprite,Background,Centre,"$img",320,240
}
