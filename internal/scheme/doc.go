// Package scheme resolves named colour schemes into series style strings and
// chart decoration for the financial renderers.
//
// Integration example:
//
//	resolver := scheme.NewResolver(chart.Stylesheets)
//	if err := resolver.ApplyTo(scheme.Dark, c); err != nil {
//		return err
//	}
//
// Series styles are written as `key=value; key=value` strings and read back
// by the renderers with ParseStyle. Decoration is applied imperatively to the
// chart through the Chart interface.
package scheme
