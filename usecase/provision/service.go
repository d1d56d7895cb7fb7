package provision

import (
	"context"

	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/util/intstr"

	"github.com/satchelworks/satchelops/adapters/kube"
)

// buildService assembles the cluster-internal service fronting the storage
// pod. The selector matches on the app label only so a recreated pod is
// picked up without touching the service.
func (u *UseCase) buildService(namespace, ownerID string) *corev1.Service {
	return &corev1.Service{
		TypeMeta: metav1.TypeMeta{APIVersion: "v1", Kind: "Service"},
		ObjectMeta: metav1.ObjectMeta{
			Name:      StorageResourceName,
			Namespace: namespace,
			Labels:    storageLabels(ownerID),
		},
		Spec: corev1.ServiceSpec{
			Type: corev1.ServiceTypeClusterIP,
			Selector: map[string]string{
				kube.LabelAppSelector: StorageResourceName,
			},
			Ports: []corev1.ServicePort{
				{
					Name:       SyncPortName,
					Port:       SyncPort,
					TargetPort: intstr.FromInt32(SyncPort),
					Protocol:   corev1.ProtocolTCP,
				},
			},
		},
	}
}

// ensureService makes sure the storage service exists. Reports whether this
// call created it.
func (u *UseCase) ensureService(ctx context.Context, namespace, ownerID string) (bool, error) {
	return u.Kube.EnsureService(ctx, u.buildService(namespace, ownerID))
}
