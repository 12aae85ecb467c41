// Package content holds the family site's built-in content: blog posts,
// the photo gallery, recipes, about-section statistics, navigation links,
// site metadata and the sitemap.
//
// All data is fixed at build time. Accessors return fresh slices so callers
// may reorder or trim them freely.
package content
