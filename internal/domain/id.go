package domain

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// objectIDHexLen is the length of a hex-encoded object id.
const objectIDHexLen = 24

// ParseID converts a client-supplied id string into an ObjectID.
// The id must be exactly 24 hex characters; anything else is a client
// error and never reaches the store.
func ParseID(id string) (primitive.ObjectID, error) {
	if len(id) != objectIDHexLen {
		return primitive.NilObjectID, fmt.Errorf(
			"%w: %q must be %d hex characters", ErrInvalidID, id, objectIDHexLen,
		)
	}
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: %q is not hex", ErrInvalidID, id)
	}
	return oid, nil
}

// ParseIDs converts a batch id list. Any malformed id fails the whole
// batch: partial translation would make the returned counts ambiguous.
func ParseIDs(ids []string) ([]primitive.ObjectID, error) {
	oids := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		oid, err := ParseID(id)
		if err != nil {
			return nil, err
		}
		oids = append(oids, oid)
	}
	return oids, nil
}
