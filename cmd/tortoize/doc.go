// 20 Sep 2026
/*

tortoize calculates Ramachandran and side chain torsion Z-scores for
protein models, by comparing their dihedral angles with reference
histograms.

Usage:
 tortoize [flags] command [command flags] [args]

Commands:
  build     read histogram text files from source_dir and write
            rama-data.bin and torsion-data.bin to data_dir
  score     score the models in one or more observation files
            (JSON, may be gzipped). With no file, read standard input.
  dump      list the histograms in the tables, or write them back out
            as text
  plot      draw one histogram as a PNG, optionally with the angles
            from an observation file on top
  config    write an example settings file
  version   say which version this is

Global flags:
  --config file    settings file (default tortoize.toml in the user
                   config directory, if it is there)
  --data-dir dir   where the binary tables live
  -v               more logging. Repeat for more.

Every setting can also come from the environment, TORTOIZE_DATA_DIR,
TORTOIZE_WORKERS and so on. Flags beat the environment, which beats the
settings file.

The score output has one entry per model,

  {"software": {...}, "model": {"1": {"ramachandran-z": ..., "ramachandran-jackknife-sd": ...,
     "torsion-z": ..., "torsion-jackknife-sd": ..., "residues": [...]}}}

A value that cannot be calculated, such as the jackknife sd of a model
with one residue, is written as null.

Reference: Sobolev et al. A Global Ramachandran Score Identifies Protein
Structures with Unlikely Stereochemistry, Structure (2020).
*/
package main
