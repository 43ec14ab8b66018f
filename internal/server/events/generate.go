package events

//go:generate gomarkdoc --output README.md .
