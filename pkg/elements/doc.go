// Package elements holds the renderable element tree built from form
// specifications. Elements own controllers carrying mutable input state;
// every element reports its submission values as identifier/entry pairs.
package elements
