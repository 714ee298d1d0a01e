/*
Package runlog records generation runs in a SQLite database.

Each Run captures the parameters of one generation (window length, corpus
source, seed text, target length and optional random seed) together with
the text it produced. The trained model itself is never stored; a run can
be reproduced by retraining on the same corpus with the same random seed.

The package works with any database/sql SQLite driver. Callers open the
database, call SetupSchema once, and then use a Store.
*/
package runlog
