package provision

import (
	"context"
	"fmt"

	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"github.com/satchelworks/satchelops/domain/model"
	"github.com/satchelworks/satchelops/usecase/sshkey"
)

// buildConfigMap assembles the authorized_keys config map for the namespace.
// The stored value carries a trailing newline so the mounted file is a valid
// authorized_keys file as is.
func (u *UseCase) buildConfigMap(namespace, ownerID, publicKey string) *corev1.ConfigMap {
	return &corev1.ConfigMap{
		TypeMeta: metav1.TypeMeta{APIVersion: "v1", Kind: "ConfigMap"},
		ObjectMeta: metav1.ObjectMeta{
			Name:      ConfigName(namespace),
			Namespace: namespace,
			Labels:    storageLabels(ownerID),
		},
		Data: map[string]string{
			AuthorizedKeysKey: publicKey + "\n",
		},
	}
}

// ensureConfig makes sure the key-material config map exists. An existing map
// is trusted and left untouched even if the stored key set has drifted, so
// key provisioning is skipped entirely in that case. Reports whether this
// call created the map.
func (u *UseCase) ensureConfig(ctx context.Context, env *model.WorkspaceEnvironment, namespace, ownerID string) (bool, error) {
	exists, err := u.Kube.ConfigMapExists(ctx, namespace, ConfigName(namespace))
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}
	out, err := u.Keys.GetOrCreate(ctx, &sshkey.GetOrCreateInput{
		OwnerID: ownerID,
		Scope:   sshkey.InternalScope,
		Name:    sshkey.DefaultKeyName,
	})
	if err != nil {
		env.AddWarning(WarningSSHKeysUnavailable, fmt.Sprintf("Not able to provision SSH keys. Cause: %v", err))
		return false, fmt.Errorf("%w: %w", model.ErrSSHProvisionFailed, err)
	}
	return u.Kube.EnsureConfigMap(ctx, u.buildConfigMap(namespace, ownerID, out.Pair.PublicKey))
}
