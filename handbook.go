// Package handbook provides a small reference browser for a catalog of
// documents. It loads a tabular catalog, filters and groups it for
// navigation, renders the selected document in an embedded viewer and
// relays link reports by email.
//
// This package contains domain types, interfaces and pure logic following
// Ben Johnson's Standard Package Layout. Implementations live in
// subdirectories named after their primary dependency (e.g., csv/, sendgrid/,
// http/).
package handbook
