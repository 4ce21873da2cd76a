package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/contactdesk/contact-management-api/internal/core/domain"
)

const (
	CollectionContacts   = "contacts"
	CollectionDuplicates = "contacts_with_duplicates"
)

// ContactRepository implements ports.ContactRepository on a MongoDB
// collection. The collection name is a constructor argument so the same
// adapter backs both the plain and the duplicate-prone contact sets.
type ContactRepository struct {
	coll *mongo.Collection
}

func NewContactRepository(db *mongo.Database, collection string) *ContactRepository {
	return &ContactRepository{coll: db.Collection(collection)}
}

type contactDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	FirstName   string             `bson:"first_name"`
	LastName    string             `bson:"last_name"`
	Email       string             `bson:"email"`
	PhoneNumber string             `bson:"phone_number"`
	Address     string             `bson:"address,omitempty"`
}

// Save upserts the contact. Records without an ID are inserted; records
// with an ID are replaced wholesale, which is a no-op for unchanged data.
func (r *ContactRepository) Save(ctx context.Context, contact *domain.Contact) (*domain.Contact, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := contactDoc{
		FirstName:   contact.FirstName,
		LastName:    contact.LastName,
		Email:       contact.Email,
		PhoneNumber: contact.PhoneNumber,
		Address:     contact.Address,
	}

	if contact.ID == "" {
		res, err := r.coll.InsertOne(ctx, doc)
		if err != nil {
			return nil, fmt.Errorf("insert contact: %w", err)
		}
		created := *contact
		created.ID = res.InsertedID.(primitive.ObjectID).Hex()
		return &created, nil
	}

	oid, err := primitive.ObjectIDFromHex(contact.ID)
	if err != nil {
		return nil, fmt.Errorf("save contact: invalid id %q: %w", contact.ID, err)
	}
	doc.ID = oid

	opts := options.Replace().SetUpsert(true)
	if _, err := r.coll.ReplaceOne(ctx, bson.M{"_id": oid}, doc, opts); err != nil {
		return nil, fmt.Errorf("replace contact: %w", err)
	}
	return contact, nil
}

func (r *ContactRepository) FindByID(ctx context.Context, id string) (*domain.Contact, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrContactNotFound
	}

	var doc contactDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrContactNotFound
		}
		return nil, fmt.Errorf("find contact: %w", err)
	}
	return docToContact(doc), nil
}

func (r *ContactRepository) FindAll(ctx context.Context) ([]*domain.Contact, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list contacts: %w", err)
	}
	defer cursor.Close(ctx)

	contacts := make([]*domain.Contact, 0)
	for cursor.Next(ctx) {
		var doc contactDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode contact: %w", err)
		}
		contacts = append(contacts, docToContact(doc))
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("list contacts: %w", err)
	}
	return contacts, nil
}

func (r *ContactRepository) FindByEmail(ctx context.Context, email string) (*domain.Contact, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *ContactRepository) FindByPhoneNumber(ctx context.Context, phoneNumber string) (*domain.Contact, error) {
	return r.findOne(ctx, bson.M{"phone_number": phoneNumber})
}

// DeleteByID removes the record; deleting an absent ID is not an error.
func (r *ContactRepository) DeleteByID(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil
	}
	if _, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid}); err != nil {
		return fmt.Errorf("delete contact: %w", err)
	}
	return nil
}

func (r *ContactRepository) findOne(ctx context.Context, filter bson.M) (*domain.Contact, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc contactDoc
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrContactNotFound
		}
		return nil, fmt.Errorf("find contact: %w", err)
	}
	return docToContact(doc), nil
}

func docToContact(doc contactDoc) *domain.Contact {
	return &domain.Contact{
		ID:          doc.ID.Hex(),
		FirstName:   doc.FirstName,
		LastName:    doc.LastName,
		Email:       doc.Email,
		PhoneNumber: doc.PhoneNumber,
		Address:     doc.Address,
	}
}
