package main

const versionText = "pxsum " + "v0.0.0-dev"

const helpText = `pxsum: checksum decoded image pixel data.

USAGE:
    pxsum [FLAGS] [OPTIONS] [FILE(S)]...

FLAGS:
        --bench                Print the total execution time before exiting.
    -c, --check                Read existing checksum/path pairs from FILE(S)
                                and check whether they still hold. Takes
                                priority over crunch-only options like -d.
    -g, --group-by-checksum    Crunch as usual, but group the results by
                                checksum. Delays output until the run ends.
    -h, --help                 Print this help information and exit.
        --no-warnings          Suppress decode warnings while crunching, and
                                malformed-line warnings while checking.
        --only-dupes           Like -g, but only checksums shared by two or
                                more images are printed.
    -q, --quiet                Suppress OK lines in -c/--check mode.
        --strict               Include color data from invisible pixels in
                                the checksum calculation.
    -V, --version              Print version information and exit.

OPTIONS:
    -d, --dir <DIR>       Recursively search <DIR> for image files and
                          checksum them alongside any other FILE(S). Ignored
                          when -c/--check is set.
    -j <NUM>              Limit parallelism to this many worker threads
                          (default: one per logical core). If NUM is
                          negative, it is subtracted from the detected
                          logical core count instead, floored at 1.

ARGS:
    [FILE(S)]...          One or more image paths to checksum, or, with
                          -c/--check, one or more manifest files to verify.

                          With no FILE(S) and no -d/--dir, input is read
                          from standard input. "-" always means stdin.

FORMATS:
    AVIF, BMP, GIF, ICO, JPEG, JPEG 2000, JPEG XL, PNG, TIFF, WebP

EXIT CODES:
    0    Success.
    1    Fatal error (decode, read, or internal failure).
    2    No checksums were produced, or --only-dupes found nothing.
    3    One or more verifications failed.`
