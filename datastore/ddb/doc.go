/*
Package ddb provides a DynamoDB implementation of the DataStore interface.

Settings live in a single table keyed by a string partition key "PK" and a
string sort key "SK". The keys follow the same layout as the Redis engine:

	PK = <prefix>:registry:<owner>:<key>    SK = <name>:<type>
	PK = <prefix>:system:<key>              SK = <name>:<type>

Each item also carries Scope, OwnerID, SettingKey, Name, Type, Value and
UpdatedAt attributes. All lists a scope with a filtered Scan; throttled pages
are retried according to storagemodels.ScanOptions:

	store := ddb.NewDynamodbDataStore(client, "settings", layout,
	    storagemodels.WithPageSize(50),
	    storagemodels.WithMaxRetries(5),
	)

Reads are strongly consistent.
*/
package ddb
