// Copyright 2025 go-highway Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package strictmath provides higher-precision reference implementations
// of the transcendental functions.
//
// Every function evaluates its result with math/big at 192 bits and rounds
// once to the destination type, so results are correctly rounded except in
// astronomically rare near-halfway cases. Special inputs (NaN, infinities,
// zeros and domain errors) follow the math package.
//
// The functions are slow; they exist to check faster implementations, not to
// replace them.
package strictmath
