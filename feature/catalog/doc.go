// Package catalog builds the content catalogs (storybooks and videos) that
// usage events refer to, and indexes them by title for label resolution.
package catalog
