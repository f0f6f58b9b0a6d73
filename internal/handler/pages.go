package handler

import (
	"embed"
	"html/template"
)

//go:embed templates/*.html
var templateFS embed.FS

var pages = template.Must(template.ParseFS(templateFS, "templates/*.html"))

type indexPage struct {
	Message     string
	Thanks      bool
	ThanksTitle string
	GatewayName string
	GatewayURL  string
}

type checkoutPage struct {
	Scripts    []string
	CheckoutJS template.JS
	OrderID    string
	Amount     string
	Button     template.HTML
}
