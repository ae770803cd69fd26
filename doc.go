/*
Package spriteframes decodes animated sprite containers (GIF and APNG, as well
as still JPEG, PNG, BMP, TIFF and WEBP images) into fully composited frames,
and writes those frames back out as individual transparent PNG files.

The sprites subpackage builds on this to extract whole batches of sprites and
describe them in a JSON manifest for the game client.
*/
package spriteframes

import "fmt"

type SpriteFramesVersion struct {
	Major, Minor, Patch uint
}

func (v SpriteFramesVersion) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

func (v SpriteFramesVersion) Equal(o SpriteFramesVersion) bool {
	return v.Major == o.Major && v.Minor == o.Minor && v.Patch == o.Patch
}

func (v SpriteFramesVersion) After(o SpriteFramesVersion) bool {
	switch {
	case v.Major != o.Major:
		return v.Major > o.Major
	case v.Minor != o.Minor:
		return v.Minor > o.Minor
	}
	return v.Patch > o.Patch
}

func (v SpriteFramesVersion) Before(o SpriteFramesVersion) bool {
	return !v.Equal(o) && !v.After(o)
}

var Version = SpriteFramesVersion{1, 2, 0}
