package gateway

// Record shapes returned by the inventory backend. Optional fields stay
// empty when the backend omits them; the renderer substitutes a dash.

// Warehouse is a stock location attached to an item.
type Warehouse struct {
	WarehouseName string `json:"warehouseName"`
}

// Item is a product scoped to an administrator.
type Item struct {
	ID          int64       `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description,omitempty"`
	Price       float64     `json:"price"`
	Quantity    int64       `json:"quantity"`
	Warehouses  []Warehouse `json:"warehouses,omitempty"`
}

// ItemRef is the nested item reference carried by import/export records.
type ItemRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name,omitempty"`
}

// ImportRecord is a document of inbound goods received from a vendor.
type ImportRecord struct {
	ID               int64    `json:"id"`
	Item             *ItemRef `json:"item,omitempty"`
	Date             string   `json:"date"`
	DocumentNumber   string   `json:"documentNumber"`
	VendorName       string   `json:"vendorName,omitempty"`
	QuantityOrdered  int64    `json:"quantityOrdered"`
	QuantityBilled   int64    `json:"quantityBilled"`
	QuantityReceived int64    `json:"quantityReceived"`
	Status           string   `json:"status"`
}

// ExportRecord is a document of outbound goods shipped to a customer.
type ExportRecord struct {
	ID              int64   `json:"id"`
	Item            ItemRef `json:"item"`
	Date            string  `json:"date"`
	DocumentNumber  string  `json:"documentNumber"`
	CustomerName    string  `json:"customerName,omitempty"`
	QuantityOrdered int64   `json:"quantityOrdered"`
	QuantityBilled  int64   `json:"quantityBilled"`
	QuantityShipped int64   `json:"quantityShipped"`
	Status          string  `json:"status"`
}
