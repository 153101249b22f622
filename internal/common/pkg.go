package common

import (
	"path"
	"strings"
)

// PkgAlias returns the package alias (last element of path) for a given package path.
// Returns empty string if pkgPath is empty.
func PkgAlias(pkgPath string) string {
	if pkgPath == "" {
		return ""
	}

	return path.Base(pkgPath)
}

// SplitQualified splits "fluentmap/store.Order" into "fluentmap/store" and "Order".
// Names without a package are returned with an empty package path.
func SplitQualified(qualified string) (pkgPath, name string) {
	slash := strings.LastIndex(qualified, "/")

	dot := strings.LastIndex(qualified[slash+1:], ".")
	if dot < 0 {
		return "", qualified
	}

	dot += slash + 1

	return qualified[:dot], qualified[dot+1:]
}

// ShortName renders a qualified type name with the package alias only: "store.Order".
func ShortName(qualified string) string {
	pkgPath, name := SplitQualified(qualified)
	if pkgPath == "" {
		return name
	}

	return PkgAlias(pkgPath) + "." + name
}
