// Package pano implements the projection and resampling math for
// equirectangular panoramas: direction <-> texture coordinate conversion,
// Euler view rotation, cube-face selection, splat rasterization and the
// Monte-Carlo texture transfer.
//
// Conventions used throughout the package:
//
//   - A direction is a unit math.Vec3 with x = cos(el)*sin(az), y = sin(el),
//     z = cos(el)*cos(az). +Z is the centre of the panorama, +Y is up.
//   - Signed coordinates (su, sv) lie in [-1, 1]: az = su*pi, el = sv*pi/2.
//   - Texture coordinates (u, v) lie in [0, 1] with v growing downward, as in
//     image rows: su = 2u - 1, sv = 1 - 2v.
//   - Euler angles are degrees and always compose as Rx * Ry * Rz.
//
// None of the math in this package returns errors. Numeric edge cases (poles,
// points behind a splat's tangent plane) resolve to defined fallbacks.
package pano
