// Package ebiten runs the game in a desktop window: it loads sprites, polls
// the keyboard, draws the world and hosts the Dear ImGui inspector.
package ebiten
