/*
Package storagemodels defines the data structures shared by the settings store and
its DataStore implementations.

Identity addresses one setting:

	id := storagemodels.RegistryID(5, "settings", "language", value.String)
	sys := storagemodels.SystemID("mail", "sender", value.String)

Entry is a setting as it sits in storage, with its raw string value. DataStore.All
returns entries unchanged, without decoding.

ScanOptions tune the full scans behind DataStore.All for engines that page through
results:

	opts := storagemodels.DefaultScanOptions()
	storagemodels.WithPageSize(25)(&opts)
	storagemodels.WithMaxRetries(5)(&opts)
*/
package storagemodels
