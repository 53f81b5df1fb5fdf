// Copyright 2024 The catapult Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ixgo

import (
	"github.com/goplus/ixgo/xgobuild"
	"github.com/goplus/mod/modfile"

	_ "github.com/catapult-build/catapult/internal/ixgo/pkg/github.com/catapult-build/catapult/script"
)

// Every build script is named build.catapult (a fixed filename rather than
// a per-project suffix), so a single registration covers every project's
// script; there is no per-class filename-prefix convention to support
// here.
func init() {
	xgobuild.RegisterProject(&modfile.Project{
		Ext:   "build.catapult",
		Class: "BuildScript",
		PkgPaths: []string{
			"github.com/catapult-build/catapult/script",
		},
	})
}
