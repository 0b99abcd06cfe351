package domain

// WarehouseTables are migrated by the warehouse api
var WarehouseTables = []interface{}{
	&Family{},
	&Product{},
	&User{},
	&OperationLog{},
}

// InvoicingTables are migrated by the invoicing api
var InvoicingTables = []interface{}{
	&Client{},
	&Invoice{},
}
