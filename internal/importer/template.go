package importer

// MappingTemplate is the CSV template offered for download. It is a
// hardcoded client-side string; no server round-trip is involved.
const MappingTemplate = `sku_code,marketplace_sku,price
SKU-BLK-TSHIRT-M,B0EXAMPLE01,499
SKU-WHT-MUG-330,B0EXAMPLE02,299
`

// TemplateFileName is the suggested name for the downloaded template.
const TemplateFileName = "sku-mapping-template.csv"
