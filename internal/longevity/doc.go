// Package longevity scores logged food, exercise and sleep events as
// signed life-impact hours and folds them into a running life-expectancy
// figure.
//
// The scoring is a demo heuristic. Food and sleep impacts are drawn from
// fixed uniform ranges per band; exercise impacts are deterministic.
package longevity
