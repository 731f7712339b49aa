package domain

// ExtractedInvoice is the structured result of running an invoice image
// through an LLM provider. It is mutated only by user edits (via the editor
// package) and becomes immutable once persisted as an Order.
type ExtractedInvoice struct {
	Confidence     float64        `json:"confidence"`
	Header         InvoiceHeader  `json:"header"`
	LineItems      []LineItem     `json:"line_items"`
	Totals         Totals         `json:"totals"`
	AdditionalInfo AdditionalInfo `json:"additional_info"`
}

// InvoiceHeader holds the invoice identity and party fields.
type InvoiceHeader struct {
	InvoiceNumber string  `json:"invoice_number"`
	Date          string  `json:"date"`
	CustomerID    string  `json:"customer_id"`
	CompanyName   string  `json:"company_name"`
	BillTo        Address `json:"bill_to"`
	ShipTo        Address `json:"ship_to"`
}

// Address is a parsed postal address block.
type Address struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
	Zip     string `json:"zip"`
}

// LineItem is one row of an invoice. Total is derived: quantity × unit price.
type LineItem struct {
	ItemNumber  string  `json:"item_number"`
	Description string  `json:"description"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	Total       float64 `json:"total"`
}

// Totals holds the invoice summary amounts. Subtotal, TaxAmount, and Total
// are derived; TaxRate (percent), Shipping, and Other come off the document.
type Totals struct {
	Subtotal  float64 `json:"subtotal"`
	TaxRate   float64 `json:"tax_rate"`
	TaxAmount float64 `json:"tax_amount"`
	Shipping  float64 `json:"shipping"`
	Other     float64 `json:"other"`
	Total     float64 `json:"total"`
}

// AdditionalInfo holds secondary invoice fields.
type AdditionalInfo struct {
	Salesperson string `json:"salesperson"`
	PONumber    string `json:"po_number"`
	ShipDate    string `json:"ship_date"`
	ShipVia     string `json:"ship_via"`
	Terms       string `json:"terms"`
	FOB         string `json:"fob"`
}

// Order is a sales order header row in one of the workbooks.
type Order struct {
	SalesOrderID     int     `json:"SalesOrderID"`
	SalesOrderNumber string  `json:"SalesOrderNumber"`
	OrderDate        string  `json:"OrderDate"`
	CustomerID       string  `json:"CustomerID"`
	SubTotal         float64 `json:"SubTotal"`
	TaxAmt           float64 `json:"TaxAmt"`
	Freight          float64 `json:"Freight"`
	TotalDue         float64 `json:"TotalDue"`
	Status           int     `json:"Status"`
	InvoiceNumber    string  `json:"InvoiceNumber,omitempty"`
	CompanyName      string  `json:"CompanyName,omitempty"`
	ExtractedAt      string  `json:"ExtractedAt,omitempty"`
	Confidence       float64 `json:"Confidence,omitempty"`
	Provider         string  `json:"Provider,omitempty"`
	Source           string  `json:"Source"`
}

// OrderDetail is a sales order line row in one of the workbooks.
type OrderDetail struct {
	SalesOrderDetailID int     `json:"SalesOrderDetailID"`
	SalesOrderID       int     `json:"SalesOrderID"`
	ProductID          string  `json:"ProductID"`
	ProductNumber      string  `json:"ProductNumber"`
	ProductName        string  `json:"ProductName"`
	OrderQty           int     `json:"OrderQty"`
	UnitPrice          float64 `json:"UnitPrice"`
	LineTotal          float64 `json:"LineTotal"`
}

// Product is a reference catalog row.
type Product struct {
	ProductID     int     `json:"ProductID"`
	ProductNumber string  `json:"ProductNumber"`
	Name          string  `json:"Name"`
	ListPrice     float64 `json:"ListPrice"`
}

// Customer is a reference customer row.
type Customer struct {
	CustomerID    int    `json:"CustomerID"`
	Name          string `json:"Name"`
	AccountNumber string `json:"AccountNumber"`
}

// Stats holds aggregate workbook counts for the stats endpoint.
type Stats struct {
	Orders                int    `json:"orders"`
	ReferenceOrders       int    `json:"reference_orders"`
	ExtractedOrders       int    `json:"extracted_orders"`
	OrderDetails          int    `json:"order_details"`
	ExtractedOrderDetails int    `json:"extracted_order_details"`
	Products              int    `json:"products"`
	Customers             int    `json:"customers"`
	ReferenceFile         string `json:"reference_file"`
	ExtractedFile         string `json:"extracted_file"`
	ReferenceExists       bool   `json:"reference_exists"`
	ExtractedExists       bool   `json:"extracted_exists"`
}

// ProcessingStep is one named phase of an upload session as seen by a stream
// consumer. A step is created the first time its id is observed and updated
// in place on repeats.
type ProcessingStep struct {
	ID      string     `json:"step"`
	Label   string     `json:"label,omitempty"`
	Status  StepStatus `json:"status"`
	Message string     `json:"message,omitempty"`
}
