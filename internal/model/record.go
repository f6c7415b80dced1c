// Package model defines the record types flowing through the pipeline.
package model

import "time"

// SaleRecord is one row of the merged Property Price Register export.
// CSV headers match the register's download format.
type SaleRecord struct {
	DateOfSale    string `csv:"Date of Sale (dd/mm/yyyy)"`
	Address       string `csv:"Address"`
	County        string `csv:"County"`
	Eircode       string `csv:"Eircode"`
	Price         string `csv:"Price (€)"`
	NotFullMarket string `csv:"Not Full Market Price"`
	VATExclusive  string `csv:"VAT Exclusive"`
	Description   string `csv:"Description of Property"`
	SizeDesc      string `csv:"Property Size Description"`
}

// ProcessedSale is a SaleRecord with the derived columns filled in.
// Field order here is the output column order.
type ProcessedSale struct {
	DateOfSale    string   `csv:"Date of Sale (dd/mm/yyyy)"`
	SaleMonth     int      `csv:"Sale_Month"`
	SaleYear      int      `csv:"Sale_Year"`
	Address       string   `csv:"Address"`
	County        string   `csv:"County"`
	Eircode       string   `csv:"Eircode"`
	PriceCleaned  *float64 `csv:"Price_Cleaned"`
	NotFullMarket string   `csv:"Not Full Market Price"`
	VATExclusive  string   `csv:"VAT Exclusive"`
	Description   string   `csv:"Description of Property"`
	SizeDesc      string   `csv:"Property Size Description"`
	Latitude      *float64 `csv:"Latitude"`
	Longitude     *float64 `csv:"Longitude"`
}

// PlanningCase is one case block scraped from the An Bord Pleanála listing
// pages. Reference is the dedupe key.
type PlanningCase struct {
	Type        string `csv:"type"`
	Title       string `csv:"title"`
	Reference   string `csv:"reference"`
	Status      string `csv:"status"`
	Description string `csv:"description"`
	DateLodged  string `csv:"date_lodged"`
	DateSigned  string `csv:"date_signed"`
	EIAR        string `csv:"eiar"`
	NIS         string `csv:"nis"`
	Parties     string `csv:"parties"`
}

// ProcessedCase is a PlanningCase with coordinates resolved from its title
// address. Latitude/Longitude sit directly after the scraped columns.
type ProcessedCase struct {
	PlanningCase
	Latitude  *float64 `csv:"Latitude"`
	Longitude *float64 `csv:"Longitude"`
}

// RunStatus tracks the lifecycle of a pipeline invocation.
type RunStatus string

// Run lifecycle states.
const (
	RunStatusQueued   RunStatus = "queued"
	RunStatusRunning  RunStatus = "running"
	RunStatusComplete RunStatus = "complete"
	RunStatusFailed   RunStatus = "failed"
)

// Run records one pipeline invocation in the store.
type Run struct {
	ID        string    `json:"id"`
	Command   string    `json:"command"`
	Status    RunStatus `json:"status"`
	Rows      int       `json:"rows"`
	Geocoded  int       `json:"geocoded"`
	Error     string    `json:"error,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
