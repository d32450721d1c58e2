// Package weather maps weather-condition descriptions onto the closed set
// of animation categories the engine can display.
package weather

import "strings"

// Category 动画类别（封闭枚举）
type Category string

const (
	Clear  Category = "clear"
	Sunny  Category = "sunny"
	Rain   Category = "rain"
	Snow   Category = "snow"
	Storm  Category = "storm"
	Cloudy Category = "cloudy"
	Mist   Category = "mist"
)

// Categories lists every valid category in a stable order.
func Categories() []Category {
	return []Category{Clear, Sunny, Rain, Snow, Storm, Cloudy, Mist}
}

// Valid reports whether c is one of the closed category set.
func Valid(c Category) bool {
	switch c {
	case Clear, Sunny, Rain, Snow, Storm, Cloudy, Mist:
		return true
	}
	return false
}

// keywordGroup 一组关键词和对应的类别
type keywordGroup struct {
	words    []string
	category Category
}

// Matching order is load-bearing: descriptions often contain several
// keywords ("cloudy with light rain") and the first matching group wins.
// rain → snow → storm → cloudy → clear/sun → mist, then default clear.
//
// 注意 clear 组内部再细分：sun/sunny 映射到 sunny，单独的 clear 映射到
// clear，但整组优先级仍在 mist 之前（"foggy and clear" 判为 clear）。
var keywordGroups = []keywordGroup{
	{words: []string{"rain", "drizzle", "shower"}, category: Rain},
	{words: []string{"snow", "blizzard", "sleet"}, category: Snow},
	{words: []string{"thunder", "storm", "lightning"}, category: Storm},
	{words: []string{"cloud", "overcast", "broken"}, category: Cloudy},
	{words: []string{"sun", "sunny"}, category: Sunny},
	{words: []string{"clear"}, category: Clear},
	{words: []string{"mist", "fog", "haze"}, category: Mist},
}

// MapDescription resolves a free-text weather description to a category.
// Matching is case-insensitive substring search in fixed priority order;
// an unrecognized description falls back to Clear.
func MapDescription(desc string) Category {
	d := strings.ToLower(desc)
	for _, g := range keywordGroups {
		for _, w := range g.words {
			if strings.Contains(d, w) {
				return g.category
			}
		}
	}
	return Clear
}

// Parse accepts either an exact category name or a free-text description.
// 精确类别名（如 GUI 下拉框传入）直接采用，其余按描述关键词解析。
func Parse(s string) Category {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	if Valid(c) {
		return c
	}
	return MapDescription(s)
}
