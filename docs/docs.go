// Package docs holds the OpenAPI documents served on /swagger/*, one swag
// instance per api. The *_docs.go and *_swagger.json files are generated.
package docs

//go:generate swag init --dir ../cmd/warehouse,../internal/warehouseapi,../internal/domain,../internal/webserver,../internal/auth --generalInfo main.go --instanceName warehouse --output . --outputTypes go,json
//go:generate swag init --dir ../cmd/invoicing,../internal/invoicingapi,../internal/domain,../internal/webserver --generalInfo main.go --instanceName invoicing --output . --outputTypes go,json
