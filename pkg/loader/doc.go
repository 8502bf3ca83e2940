// Package loader provides types.Loader implementations. A ScopeLoader wraps
// a registry scope and can additionally serve named resources from an fs.FS,
// which is how module-aware loaders expose META-INF/services entries.
package loader
