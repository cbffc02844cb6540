package server

import (
	"html/template"

	"github.com/mizutamari/keepsake/pkg/model"
)

// Theme holds the render-time visual parameters of one style. The CSS
// values are trusted constants, typed so the template engine passes
// the gradients through untouched.
type Theme struct {
	Label      string
	Background template.CSS
	Surface    template.CSS
	Text       template.CSS
	Accent     template.CSS
}

var themes = map[model.VisualStyle]Theme{
	model.StyleNeon:       {Label: "Neon Nights", Background: "linear-gradient(135deg, #0f0c29, #302b63, #24243e)", Surface: "rgba(255,255,255,0.06)", Text: "#f5f5ff", Accent: "#ff1493"},
	model.StyleSakura:     {Label: "Sakura Bloom", Background: "linear-gradient(135deg, #ffdee9, #fff5f7)", Surface: "rgba(255,255,255,0.7)", Text: "#5c374c", Accent: "#e75480"},
	model.StyleCosmic:     {Label: "Cosmic Drift", Background: "linear-gradient(135deg, #000428, #004e92)", Surface: "rgba(255,255,255,0.08)", Text: "#e8f0ff", Accent: "#7f7fff"},
	model.StyleOcean:      {Label: "Deep Ocean", Background: "linear-gradient(135deg, #141e30, #243b55)", Surface: "rgba(255,255,255,0.08)", Text: "#e0f7fa", Accent: "#00bcd4"},
	model.StyleSunset:     {Label: "Golden Sunset", Background: "linear-gradient(135deg, #ff7e5f, #feb47b)", Surface: "rgba(255,255,255,0.35)", Text: "#4a2c2a", Accent: "#d7263d"},
	model.StyleVintage:    {Label: "Vintage Paper", Background: "linear-gradient(135deg, #e8d8c3, #f5ecd9)", Surface: "rgba(255,255,255,0.55)", Text: "#4b3f2f", Accent: "#a0522d"},
	model.StyleForest:     {Label: "Quiet Forest", Background: "linear-gradient(135deg, #134e5e, #71b280)", Surface: "rgba(255,255,255,0.12)", Text: "#f0fff4", Accent: "#9acd32"},
	model.StyleGlitch:     {Label: "Glitch Party", Background: "linear-gradient(135deg, #1a002a, #3d0a56)", Surface: "rgba(255,255,255,0.08)", Text: "#e8ffe8", Accent: "#00ff9f"},
	model.StyleElegant:    {Label: "Black Tie", Background: "linear-gradient(135deg, #0d0d0d, #2b2b2b)", Surface: "rgba(255,255,255,0.06)", Text: "#f0ead6", Accent: "#c9a227"},
	model.StyleClouds:     {Label: "Daydream Clouds", Background: "linear-gradient(135deg, #bdd8f1, #e9f2fb)", Surface: "rgba(255,255,255,0.7)", Text: "#34495e", Accent: "#5b8def"},
	model.StyleMinimal:    {Label: "Minimal Ink", Background: "#fafafa", Surface: "#ffffff", Text: "#222222", Accent: "#111111"},
	model.StylePolaroid:   {Label: "Polaroid Wall", Background: "linear-gradient(135deg, #f8f4ec, #efe7da)", Surface: "#ffffff", Text: "#3e3a35", Accent: "#e07a5f"},
	model.StyleMidnight:   {Label: "Midnight Sky", Background: "linear-gradient(135deg, #020111, #20202c)", Surface: "rgba(255,255,255,0.07)", Text: "#dfe6f5", Accent: "#8793ff"},
	model.StyleLoveLetter: {Label: "Love Letter", Background: "linear-gradient(135deg, #fff0f3, #ffe0e9)", Surface: "rgba(255,255,255,0.75)", Text: "#6d2438", Accent: "#d72660"},
}

// themeFor resolves a style to its theme, falling back to neon for
// unknown or missing styles
func themeFor(style model.VisualStyle) Theme {
	if theme, ok := themes[style]; ok {
		return theme
	}
	return themes[model.StyleNeon]
}
